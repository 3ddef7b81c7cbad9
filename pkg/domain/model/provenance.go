package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// BBox is a rectangle in page pixel space
type BBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Quad returns the bbox as the [x, y, w, h] tuple the viewer consumes
func (b BBox) Quad() [4]float64 {
	return [4]float64{b.X, b.Y, b.Width, b.Height}
}

// ProvenanceRecord asserts that a specific document/page/region is the source
// of one extracted field value. Multiple records may assert the same field
// path; inactive records are historical and excluded from citation.
type ProvenanceRecord struct {
	ID               types.RecordID
	SessionID        types.SessionID
	FieldPath        string
	DocumentID       types.DocumentID
	DocumentName     string
	DocumentType     types.DocumentType
	DocumentURL      string
	PageNumber       int
	BBox             *BBox
	Confidence       float64
	ExtractionMethod types.ExtractionMethod
	IsActive         bool
	VersionNumber    int
	CreatedAt        time.Time
}

// rawProvenanceRecord is the wire shape of a provenance record. Producers
// disagree on field encodings: confidence may arrive as a number or a
// numeric-looking string, bbox as an object or a JSON-encoded string.
// All coercion happens here, once, so the rest of the engine sees only the
// strict ProvenanceRecord shape.
type rawProvenanceRecord struct {
	ID               string          `json:"id"`
	SessionID        string          `json:"session_id"`
	FieldPath        string          `json:"field_path"`
	DocumentID       string          `json:"document_id"`
	DocumentName     string          `json:"document_name"`
	DocumentType     string          `json:"document_type"`
	DocumentURL      string          `json:"document_url"`
	PageNumber       int             `json:"page_number"`
	BBox             json.RawMessage `json:"bbox"`
	Confidence       json.RawMessage `json:"confidence"`
	ExtractionMethod string          `json:"extraction_method"`
	IsActive         bool            `json:"is_active"`
	VersionNumber    int             `json:"version_number"`
	CreatedAt        time.Time       `json:"created_at"`
}

// rawBBox accepts both {x,y,width,height} and the shorthand {x,y,w,h}
type rawBBox struct {
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	W      *float64 `json:"w"`
	H      *float64 `json:"h"`
}

// UnmarshalJSON decodes a provenance record defensively. A malformed
// confidence defaults to 0 and a malformed bbox to absent; neither is fatal.
func (r *ProvenanceRecord) UnmarshalJSON(data []byte) error {
	var raw rawProvenanceRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ID = types.RecordID(raw.ID)
	r.SessionID = types.SessionID(raw.SessionID)
	r.FieldPath = raw.FieldPath
	r.DocumentID = types.DocumentID(raw.DocumentID)
	r.DocumentName = raw.DocumentName
	r.DocumentType = types.DocumentType(raw.DocumentType)
	r.DocumentURL = raw.DocumentURL
	r.PageNumber = raw.PageNumber
	r.BBox = parseBBox(raw.BBox)
	r.Confidence = parseConfidence(raw.Confidence)
	r.ExtractionMethod = types.ExtractionMethod(raw.ExtractionMethod)
	r.IsActive = raw.IsActive
	r.VersionNumber = raw.VersionNumber
	r.CreatedAt = raw.CreatedAt

	return nil
}

// MarshalJSON emits the canonical wire shape
func (r ProvenanceRecord) MarshalJSON() ([]byte, error) {
	raw := rawProvenanceRecord{
		ID:               string(r.ID),
		SessionID:        string(r.SessionID),
		FieldPath:        r.FieldPath,
		DocumentID:       string(r.DocumentID),
		DocumentName:     r.DocumentName,
		DocumentType:     string(r.DocumentType),
		DocumentURL:      r.DocumentURL,
		PageNumber:       r.PageNumber,
		ExtractionMethod: string(r.ExtractionMethod),
		IsActive:         r.IsActive,
		VersionNumber:    r.VersionNumber,
		CreatedAt:        r.CreatedAt,
	}

	conf, err := json.Marshal(r.Confidence)
	if err != nil {
		return nil, err
	}
	raw.Confidence = conf

	if r.BBox != nil {
		bbox, err := json.Marshal(r.BBox)
		if err != nil {
			return nil, err
		}
		raw.BBox = bbox
	}

	return json.Marshal(raw)
}

// parseConfidence coerces a number or numeric string into [0,1], defaulting
// to 0 on failure
func parseConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return clampConfidence(num)
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if num, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			return clampConfidence(num)
		}
	}

	return 0
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// parseBBox accepts a bbox as a JSON object or a JSON-encoded string.
// Anything unparsable yields nil (absent bbox).
func parseBBox(raw json.RawMessage) *BBox {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	data := []byte(raw)

	// A JSON-encoded string holds the object one level deeper
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		data = []byte(str)
	}

	var rb rawBBox
	if err := json.Unmarshal(data, &rb); err != nil {
		return nil
	}

	bbox := &BBox{X: rb.X, Y: rb.Y}
	switch {
	case rb.Width != nil:
		bbox.Width = *rb.Width
	case rb.W != nil:
		bbox.Width = *rb.W
	}
	switch {
	case rb.Height != nil:
		bbox.Height = *rb.Height
	case rb.H != nil:
		bbox.Height = *rb.H
	}

	return bbox
}
