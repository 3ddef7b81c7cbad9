package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shamay-ai/mekorot/pkg/cli/config"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
)

func TestLabelsConfigure(t *testing.T) {
	t.Run("no file keeps built-in labels", func(t *testing.T) {
		labels, err := config.NewLabels("").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, labels).Nil()
	})

	t.Run("overrides merge over the defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.toml")
		content := `
[labels]
gush = "מספר גוש"
custom_field = "שדה מיוחד"
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()

		labels, err := config.NewLabels(path).Configure()
		gt.NoError(t, err).Required()

		gt.Value(t, labels.For("gush")).Equal("מספר גוש")
		gt.Value(t, labels.For("custom_field")).Equal("שדה מיוחד")
		// untouched defaults survive the merge
		gt.Value(t, labels.For("helka")).Equal(model.DefaultLabels["helka"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.NewLabels("/nonexistent/labels.toml").Configure()
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "labels.toml")
		gt.NoError(t, os.WriteFile(path, []byte("[labels\ngush="), 0644)).Required()

		_, err := config.NewLabels(path).Configure()
		gt.Error(t, err)
	})
}
