package model

import (
	"time"

	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// Document describes one uploaded source document of a session
type Document struct {
	ID         types.DocumentID
	SessionID  types.SessionID
	Name       string
	Type       types.DocumentType
	URL        string
	PreviewURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ViewerURL returns the URL the document viewer should render: the rendered
// preview when available, otherwise the original upload
func (d *Document) ViewerURL() string {
	if d.PreviewURL != "" {
		return d.PreviewURL
	}
	return d.URL
}
