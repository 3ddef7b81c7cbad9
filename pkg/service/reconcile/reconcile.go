package reconcile

import (
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// LowConfidenceThreshold is the citation confidence below which a field is
// flagged for review
const LowConfidenceThreshold = 0.7

// Reconciler walks an extracted-data object, resolves each field's
// provenance through an Index, and emits the viewer-ready snapshot
type Reconciler struct {
	labels model.Labels
}

// Option is a functional option for Reconciler configuration
type Option func(*Reconciler)

// WithLabels overrides the built-in Hebrew field label dictionary
func WithLabels(labels model.Labels) Option {
	return func(r *Reconciler) {
		r.labels = labels
	}
}

// New creates a new Reconciler
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		labels: model.DefaultLabels,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile produces the complete snapshot for one session: every present
// scalar field with its deduplicated citations and status, plus the
// per-document page index. The inputs are read-only; the output is rebuilt
// from scratch on every call.
func (r *Reconciler) Reconcile(data model.ExtractedData, idx Index, docs []*model.Document) *model.Snapshot {
	fields := make([]model.ReconciledField, 0, len(data))

	for _, key := range data.TopLevelKeys() {
		value, ok := model.ScalarString(data[key])
		if !ok {
			continue
		}

		records := surviving(idx.Resolve(key, false))
		fields = append(fields, model.ReconciledField{
			ID:      key,
			Label:   r.labels.For(key),
			Value:   value,
			Sources: citations(records),
			Status:  classify(records),
		})
	}

	for _, structure := range model.NestedStructures {
		obj, keys := data.Nested(structure)
		for _, key := range keys {
			value, ok := model.ScalarString(obj[key])
			if !ok {
				continue
			}

			path := structure + "." + key
			records := surviving(idx.Resolve(path, true))
			fields = append(fields, model.ReconciledField{
				ID:      path,
				Label:   r.labels.For(path),
				Value:   value,
				Sources: citations(records),
				Status:  classifyNested(records),
			})
		}
	}

	refs, pages := buildPages(docs, idx)

	return &model.Snapshot{
		Fields:    fields,
		Documents: refs,
		Doc: model.Doc{
			Name:  docSetName(docs),
			Pages: pages,
		},
		Meta: model.NewMeta(),
	}
}

// surviving filters out inactive records and deduplicates by record ID.
// Last-seen wins: records sharing an ID are identical assertions.
func surviving(records []*model.ProvenanceRecord) []*model.ProvenanceRecord {
	out := make([]*model.ProvenanceRecord, 0, len(records))
	seen := make(map[types.RecordID]int, len(records))
	for _, record := range records {
		if !record.IsActive {
			continue
		}
		if pos, ok := seen[record.ID]; ok {
			out[pos] = record
			continue
		}
		seen[record.ID] = len(out)
		out = append(out, record)
	}
	return out
}

// citations projects surviving records into the viewer citation shape
func citations(records []*model.ProvenanceRecord) []model.Citation {
	out := make([]model.Citation, 0, len(records))
	for _, record := range records {
		citation := model.Citation{
			DocID:   record.DocumentID,
			DocName: record.DocumentName,
			Page:    record.PageNumber,
			BBox:    model.DefaultBBoxQuad,
			Conf:    record.Confidence,
		}
		if record.BBox != nil {
			citation.BBox = record.BBox.Quad()
		}
		out = append(out, citation)
	}
	return out
}

// classify derives a top-level field's status from its surviving records:
// a single manual correction overrides automated confidence since a human
// already vetted the value, and low confidence is the default warning tier.
func classify(records []*model.ProvenanceRecord) types.FieldStatus {
	if len(records) == 0 {
		return types.FieldStatusMissing
	}
	for _, record := range records {
		if record.ExtractionMethod.IsManual() {
			return types.FieldStatusManual
		}
	}
	for _, record := range records {
		if record.Confidence < LowConfidenceThreshold {
			return types.FieldStatusLowConf
		}
	}
	return types.FieldStatusOK
}

// classifyNested is the reduced policy for nested fields: any citation is
// "ok", none is "missing". The manual/low-confidence tiers are deliberately
// not evaluated here; see the open-question note in DESIGN.md.
func classifyNested(records []*model.ProvenanceRecord) types.FieldStatus {
	if len(records) == 0 {
		return types.FieldStatusMissing
	}
	return types.FieldStatusOK
}
