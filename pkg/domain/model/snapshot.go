package model

import "github.com/shamay-ai/mekorot/pkg/domain/types"

// Default page geometry used when a document has no page-level provenance
const (
	DefaultPageWidth  = 800
	DefaultPageHeight = 1200
)

// DefaultBBoxQuad is the citation bbox used when a record carries no bbox
var DefaultBBoxQuad = [4]float64{0, 0, 100, 100}

// Citation is the viewer-facing projection of one provenance record
type Citation struct {
	DocID   types.DocumentID `json:"docId,omitempty"`
	DocName string           `json:"docName,omitempty"`
	Page    int              `json:"page"`
	BBox    [4]float64       `json:"bbox"`
	Conf    float64          `json:"conf"`
}

// ReconciledField is one extracted field with its deduplicated citations and
// classified status
type ReconciledField struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Value   string            `json:"value"`
	Sources []Citation        `json:"sources"`
	Status  types.FieldStatus `json:"status"`
}

// Page is one renderable document page in the viewer's flattened page list
type Page struct {
	DocID    types.DocumentID `json:"docId"`
	DocName  string           `json:"docName"`
	Number   int              `json:"number"`
	Width    int              `json:"width"`
	Height   int              `json:"height"`
	ImageURL string           `json:"imageUrl"`
}

// DocumentRef is the viewer's document descriptor
type DocumentRef struct {
	ID   types.DocumentID  `json:"id"`
	Name string            `json:"name"`
	Type types.DocumentType `json:"type"`
	URL  string            `json:"url"`
}

// Doc is the viewer's aggregate page list across all documents
type Doc struct {
	Name  string `json:"name"`
	Pages []Page `json:"pages"`
}

// Meta carries viewer rendering hints. Coordinates are page pixels and the
// host product is Hebrew, so text direction is right-to-left.
type Meta struct {
	Units     string `json:"units"`
	Direction string `json:"direction"`
}

// Snapshot is the complete viewer-ready reconciliation output. It is rebuilt
// from scratch on every reconciliation and never mutated afterwards.
type Snapshot struct {
	Fields    []ReconciledField `json:"fields"`
	Documents []DocumentRef     `json:"documents"`
	Doc       Doc               `json:"doc"`
	Meta      Meta              `json:"meta"`
}

// NewMeta returns the fixed rendering hints for the Hebrew document viewer
func NewMeta() Meta {
	return Meta{Units: "px", Direction: "rtl"}
}
