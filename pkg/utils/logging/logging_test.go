package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/shamay-ai/mekorot/pkg/utils/logging"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	ctx := logging.With(context.Background(), logger)
	gt.Value(t, logging.From(ctx)).Equal(logger)

	// without a logger the default is returned
	gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	logger.Info("hello", "session_id", "abc")

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry)).Required()
	gt.Value(t, entry["msg"]).Equal(any("hello"))
	gt.Value(t, entry["session_id"]).Equal(any("abc"))
}

func TestSecretRedaction(t *testing.T) {
	type credentials struct {
		User  string `json:"user"`
		Token string `json:"token" masq:"secret"`
	}

	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	logger.Info("configured", "creds", credentials{User: "appraiser", Token: "s3cr3t"})

	out := buf.String()
	gt.Bool(t, strings.Contains(out, "s3cr3t")).False()
	gt.Bool(t, strings.Contains(out, "appraiser")).True()
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatJSON)

	logger.Info("dropped")
	gt.Value(t, buf.Len()).Equal(0)

	logger.Warn("kept")
	gt.Bool(t, buf.Len() > 0).True()
}
