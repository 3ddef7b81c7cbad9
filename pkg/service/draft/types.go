package draft

import (
	"context"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
)

// Service drafts the descriptive Hebrew text blocks of a valuation document
// from reconciled field data. It is an opaque boundary: callers receive
// generated text or an error and make no assumption about the provider.
type Service interface {
	// Describe generates the property description section
	Describe(ctx context.Context, input Input) (*Result, error)
}

// Input is the property data the draft is based on
type Input struct {
	PropertyAddress string
	Fields          []model.ReconciledField
}

// Result holds the generated text
type Result struct {
	Text string
}
