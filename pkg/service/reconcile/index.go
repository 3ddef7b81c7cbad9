// Package reconcile matches extracted property fields to their provenance
// records across naming-convention drift and produces the unified, status-
// classified snapshot consumed by the document viewer.
//
// The package is pure: it performs no I/O, holds no state between calls, and
// never fails on malformed individual records. Fetching the inputs and owning
// the resulting snapshot is the usecase layer's concern.
package reconcile

import (
	"github.com/shamay-ai/mekorot/pkg/domain/model"
)

// Index maps a claimed field path to the sequence of provenance records
// asserted under that exact path, insertion order preserved. No normalization
// happens at this stage; resolving naming variants is Resolve's job.
type Index map[string][]*model.ProvenanceRecord

// BuildIndex groups records verbatim by their claimed field path. Every input
// record lands in exactly one bucket.
func BuildIndex(records []*model.ProvenanceRecord) Index {
	idx := make(Index, len(records))
	for _, record := range records {
		idx[record.FieldPath] = append(idx[record.FieldPath], record)
	}
	return idx
}

// Lookup returns the records filed under the exact path. An unseen path
// yields an empty result, never a failure.
func (idx Index) Lookup(path string) []*model.ProvenanceRecord {
	return idx[path]
}

// Records returns all indexed records. Order across buckets is unspecified;
// callers that need determinism must sort.
func (idx Index) Records() []*model.ProvenanceRecord {
	var all []*model.ProvenanceRecord
	for _, bucket := range idx {
		all = append(all, bucket...)
	}
	return all
}
