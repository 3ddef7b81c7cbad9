package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shamay-ai/mekorot/pkg/cli/config"
)

func TestRepositoryConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		repo, err := config.NewRepository("memory", "", "").Configure(ctx)
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore without project ID", func(t *testing.T) {
		_, err := config.NewRepository("firestore", "", "").Configure(ctx)
		gt.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := config.NewRepository("postgres", "", "").Configure(ctx)
		gt.Error(t, err)
	})
}
