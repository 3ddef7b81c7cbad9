package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/shamay-ai/mekorot/pkg/cli/config"
	httpctrl "github.com/shamay-ai/mekorot/pkg/controller/http"
	"github.com/shamay-ai/mekorot/pkg/service/docstore"
	"github.com/shamay-ai/mekorot/pkg/service/draft"
	"github.com/shamay-ai/mekorot/pkg/service/worker"
	"github.com/shamay-ai/mekorot/pkg/usecase"
	"github.com/shamay-ai/mekorot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var signURLs bool
	var urlTTL time.Duration
	var refreshInterval time.Duration
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var sentryCfg config.Sentry
	var labelsCfg config.Labels

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MEKOROT_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "sign-document-urls",
			Usage:       "Resolve gs:// document references into signed URLs (requires Cloud Storage credentials)",
			Sources:     cli.EnvVars("MEKOROT_SIGN_DOCUMENT_URLS"),
			Destination: &signURLs,
		},
		&cli.DurationFlag{
			Name:        "document-url-ttl",
			Usage:       "Validity window of signed document URLs",
			Value:       docstore.DefaultURLTTL,
			Sources:     cli.EnvVars("MEKOROT_DOCUMENT_URL_TTL"),
			Destination: &urlTTL,
		},
		&cli.DurationFlag{
			Name:        "snapshot-refresh-interval",
			Usage:       "Interval for pre-warming snapshots of sessions under review (0 disables the worker)",
			Sources:     cli.EnvVars("MEKOROT_SNAPSHOT_REFRESH_INTERVAL"),
			Destination: &refreshInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, labelsCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			closeSentry, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer closeSentry()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			labels, err := labelsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load label dictionary")
			}

			ucOpts := []usecase.Option{}
			if labels != nil {
				ucOpts = append(ucOpts, usecase.WithLabels(labels))
				logging.Default().Info("Custom label dictionary loaded", "labels", len(labels))
			}

			if signURLs {
				docs, err := docstore.New(ctx, docstore.WithURLTTL(urlTTL))
				if err != nil {
					return goerr.Wrap(err, "failed to initialize document store")
				}
				defer func() {
					if err := docs.Close(); err != nil {
						logging.Default().Error("failed to close document store", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithDocStore(docs))
				logging.Default().Info("Signed document URLs enabled", "ttl", urlTTL)
			}

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}
			if llmClient != nil {
				drafter, err := draft.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize draft service")
				}
				ucOpts = append(ucOpts, usecase.WithDraftService(drafter))
				logging.Default().Info("Draft generation enabled")
			} else {
				logging.Default().Info("Gemini not configured, draft generation disabled")
			}

			uc := usecase.New(repo, ucOpts...)

			var refreshWorker *worker.SnapshotRefreshWorker
			if refreshInterval > 0 {
				refreshWorker = worker.NewSnapshotRefreshWorker(repo, uc.Provenance, refreshInterval)
				if err := refreshWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start snapshot refresh worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if refreshWorker != nil {
					refreshWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
