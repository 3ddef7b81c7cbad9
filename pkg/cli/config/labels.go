package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Labels holds CLI flags for the field label dictionary
type Labels struct {
	path string
}

// labelsFile is the on-disk TOML shape:
//
//	[labels]
//	gush = "גוש"
//	"land_registry.owner" = "בעלים"
type labelsFile struct {
	Labels map[string]string `toml:"labels"`
}

// Flags returns CLI flags for label configuration
func (l *Labels) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "labels-file",
			Usage:       "TOML file overriding the built-in Hebrew field labels",
			Sources:     cli.EnvVars("MEKOROT_LABELS_FILE"),
			Destination: &l.path,
		},
	}
}

// Configure returns the label dictionary: the built-in Hebrew labels merged
// with any overrides from the configured TOML file. Returns nil when no file
// is configured, letting callers fall back to the defaults.
func (l *Labels) Configure() (model.Labels, error) {
	if l.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, goerr.Wrap(ErrConfigNotFound, "failed to read labels file", goerr.V(ConfigPathKey, l.path))
	}

	var parsed labelsFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse labels file", goerr.V(ConfigPathKey, l.path))
	}

	return model.DefaultLabels.Merge(model.Labels(parsed.Labels)), nil
}
