// Package docstore resolves stored document references into URLs the
// document viewer can render. Documents uploaded by the wizard live in
// Cloud Storage under gs:// references; already-public https URLs pass
// through untouched.
package docstore

import (
	"context"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultURLTTL is how long generated signed URLs stay valid
const DefaultURLTTL = 15 * time.Minute

// Service resolves document references to viewer-renderable URLs
type Service interface {
	// ResolveURL converts a gs:// reference into a signed https URL.
	// Non-gs references are returned unchanged.
	ResolveURL(ctx context.Context, raw string) (string, error)

	// Close releases the underlying storage client
	Close() error
}

type client struct {
	storage *storage.Client
	ttl     time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithURLTTL overrides the signed URL validity window
func WithURLTTL(ttl time.Duration) Option {
	return func(c *client) {
		c.ttl = ttl
	}
}

// New creates a docstore service using ambient Google credentials
func New(ctx context.Context, opts ...Option) (Service, error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	c := &client{
		storage: sc,
		ttl:     DefaultURLTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *client) ResolveURL(ctx context.Context, raw string) (string, error) {
	bucket, object, ok := splitGSRef(raw)
	if !ok {
		return raw, nil
	}

	url, err := c.storage.Bucket(bucket).SignedURL(object, &storage.SignedURLOptions{
		Method:  http.MethodGet,
		Expires: time.Now().Add(c.ttl),
		Scheme:  storage.SigningSchemeV4,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign document URL",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}

	return url, nil
}

func (c *client) Close() error {
	return c.storage.Close()
}

// splitGSRef parses "gs://bucket/path/to/object" into its parts
func splitGSRef(raw string) (bucket, object string, ok bool) {
	rest, found := strings.CutPrefix(raw, "gs://")
	if !found {
		return "", "", false
	}
	bucket, object, found = strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}
