package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/cli/config"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/service/reconcile"
	"github.com/shamay-ai/mekorot/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// statusColors renders field statuses in the one-shot summary
var statusColors = map[types.FieldStatus]*color.Color{
	types.FieldStatusOK:      color.New(color.FgGreen),
	types.FieldStatusLowConf: color.New(color.FgYellow),
	types.FieldStatusManual:  color.New(color.FgCyan),
	types.FieldStatusMissing: color.New(color.FgRed),
}

func cmdReconcile() *cli.Command {
	var extractedPath string
	var recordsPath string
	var documentsPath string
	var outputPath string
	var quiet bool
	var labelsCfg config.Labels

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "extracted",
			Usage:       "JSON file holding the extracted data object",
			Required:    true,
			Destination: &extractedPath,
		},
		&cli.StringFlag{
			Name:        "records",
			Usage:       "JSON file holding the provenance record array",
			Required:    true,
			Destination: &recordsPath,
		},
		&cli.StringFlag{
			Name:        "documents",
			Usage:       "JSON file holding the document descriptor array (optional)",
			Destination: &documentsPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Snapshot output path (default: stdout)",
			Destination: &outputPath,
		},
		&cli.BoolFlag{
			Name:        "quiet",
			Aliases:     []string{"q"},
			Usage:       "Suppress the per-field status summary",
			Destination: &quiet,
		},
	}
	flags = append(flags, labelsCfg.Flags()...)

	return &cli.Command{
		Name:    "reconcile",
		Aliases: []string{"r"},
		Usage:   "Reconcile extracted data with provenance records from local files",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var data model.ExtractedData
			if err := decodeFile(extractedPath, &data); err != nil {
				return err
			}

			var records []*model.ProvenanceRecord
			if err := decodeFile(recordsPath, &records); err != nil {
				return err
			}

			var docs []*model.Document
			if documentsPath != "" {
				var wire []documentInput
				if err := decodeFile(documentsPath, &wire); err != nil {
					return err
				}
				for _, d := range wire {
					docs = append(docs, d.toModel())
				}
			}

			labels, err := labelsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load label dictionary")
			}
			reconcilerOpts := []reconcile.Option{}
			if labels != nil {
				reconcilerOpts = append(reconcilerOpts, reconcile.WithLabels(labels))
			}

			idx := reconcile.BuildIndex(records)
			snapshot := reconcile.New(reconcilerOpts...).Reconcile(data, idx, docs)

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return goerr.Wrap(err, "failed to create output file", goerr.V("path", outputPath))
				}
				defer safe.Close(ctx, f)
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(snapshot); err != nil {
				return goerr.Wrap(err, "failed to encode snapshot")
			}

			if !quiet {
				printSummary(snapshot)
			}
			return nil
		},
	}
}

// documentInput is the wire shape of a document descriptor
type documentInput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	PreviewURL string `json:"preview_url"`
}

func (d documentInput) toModel() *model.Document {
	return &model.Document{
		ID:         types.DocumentID(d.ID),
		Name:       d.Name,
		Type:       types.DocumentType(d.Type),
		URL:        d.URL,
		PreviewURL: d.PreviewURL,
	}
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return goerr.Wrap(err, "failed to parse input file", goerr.V("path", path))
	}
	return nil
}

// printSummary writes a per-field status table to stderr so the snapshot on
// stdout stays machine-readable
func printSummary(snapshot *model.Snapshot) {
	counts := map[types.FieldStatus]int{}
	for _, f := range snapshot.Fields {
		counts[f.Status]++

		c, ok := statusColors[f.Status]
		if !ok {
			c = color.New(color.Reset)
		}
		fmt.Fprintf(os.Stderr, "%s  %s (%s): %d sources\n",
			c.Sprintf("%-8s", f.Status), f.Label, f.ID, len(f.Sources))
	}

	fmt.Fprintf(os.Stderr, "\n%d fields: %s ok, %s low confidence, %s manual, %s missing\n",
		len(snapshot.Fields),
		color.GreenString("%d", counts[types.FieldStatusOK]),
		color.YellowString("%d", counts[types.FieldStatusLowConf]),
		color.CyanString("%d", counts[types.FieldStatusManual]),
		color.RedString("%d", counts[types.FieldStatusMissing]),
	)
}
