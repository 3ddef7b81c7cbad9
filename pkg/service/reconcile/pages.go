package reconcile

import (
	"sort"

	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

// Placeholder identity emitted when a session has no renderable documents,
// so the viewer always receives a non-empty page list
const (
	placeholderDocName = "ללא מסמכים"
	docSetDefaultName  = "מסמכי שומה"
)

// buildPages constructs the viewer's document list and flattened page index.
// Each document contributes its provenance-derived pages (deduplicated by
// page number) or a single synthetic page when no page-level provenance
// exists. When nothing resolves at all, a placeholder document and page are
// emitted instead.
func buildPages(docs []*model.Document, idx Index) ([]model.DocumentRef, []model.Page) {
	byDoc := activePagesByDocument(idx)

	refs := make([]model.DocumentRef, 0, len(docs))
	var pages []model.Page

	for _, doc := range docs {
		url := doc.ViewerURL()
		if url == "" {
			continue
		}

		refs = append(refs, model.DocumentRef{
			ID:   doc.ID,
			Name: doc.Name,
			Type: doc.Type,
			URL:  url,
		})

		numbers := byDoc[doc.ID]
		if len(numbers) == 0 {
			pages = append(pages, model.Page{
				DocID:    doc.ID,
				DocName:  doc.Name,
				Number:   1,
				Width:    model.DefaultPageWidth,
				Height:   model.DefaultPageHeight,
				ImageURL: url,
			})
			continue
		}

		for _, number := range numbers {
			pages = append(pages, model.Page{
				DocID:    doc.ID,
				DocName:  doc.Name,
				Number:   number,
				Width:    model.DefaultPageWidth,
				Height:   model.DefaultPageHeight,
				ImageURL: url,
			})
		}
	}

	if len(pages) == 0 {
		refs = []model.DocumentRef{{
			ID:   "",
			Name: placeholderDocName,
			Type: types.DocumentTypeOther,
			URL:  "",
		}}
		pages = []model.Page{{
			DocID:    "",
			DocName:  placeholderDocName,
			Number:   1,
			Width:    model.DefaultPageWidth,
			Height:   model.DefaultPageHeight,
			ImageURL: "",
		}}
	}

	return refs, pages
}

// activePagesByDocument collects the distinct page numbers each document's
// active records reference, in ascending order
func activePagesByDocument(idx Index) map[types.DocumentID][]int {
	seen := make(map[types.DocumentID]map[int]bool)
	for _, record := range idx.Records() {
		if !record.IsActive || record.DocumentID == "" || record.PageNumber < 1 {
			continue
		}
		if seen[record.DocumentID] == nil {
			seen[record.DocumentID] = make(map[int]bool)
		}
		seen[record.DocumentID][record.PageNumber] = true
	}

	byDoc := make(map[types.DocumentID][]int, len(seen))
	for docID, numbers := range seen {
		sorted := make([]int, 0, len(numbers))
		for number := range numbers {
			sorted = append(sorted, number)
		}
		sort.Ints(sorted)
		byDoc[docID] = sorted
	}
	return byDoc
}

// docSetName names the aggregate page list. The product renders one viewer
// per appraisal, so the set carries a fixed Hebrew title.
func docSetName(docs []*model.Document) string {
	if len(docs) == 1 {
		return docs[0].Name
	}
	return docSetDefaultName
}
