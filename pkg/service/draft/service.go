package draft

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// client implements Service on a gollem LLM client
type client struct {
	llmClient gollem.LLMClient
}

// Option is a functional option for client configuration
type Option func(*client)

// New creates a new draft service with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &client{
		llmClient: llmClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

const systemPrompt = `אתה שמאי מקרקעין מוסמך. כתוב תיאור נכס ענייני ומקצועי עבור שומת מקרקעין, בעברית, על בסיס הנתונים שסופקו בלבד. אל תמציא פרטים שאינם מופיעים בנתונים.`

// Describe generates the property description section
func (c *client) Describe(ctx context.Context, input Input) (*Result, error) {
	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(input)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate description")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("LLM returned no text")
	}

	return &Result{Text: strings.TrimSpace(resp.Texts[0])}, nil
}

// buildUserPrompt serializes the reconciled fields as labeled lines
func buildUserPrompt(input Input) string {
	var b strings.Builder
	b.WriteString("כתובת הנכס: ")
	b.WriteString(input.PropertyAddress)
	b.WriteString("\n\nנתוני הנכס:\n")
	for _, field := range input.Fields {
		if field.Value == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(field.Label)
		b.WriteString(": ")
		b.WriteString(field.Value)
		b.WriteString("\n")
	}
	return b.String()
}
