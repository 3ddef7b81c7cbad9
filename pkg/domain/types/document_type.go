package types

// DocumentType classifies an uploaded source document
type DocumentType string

const (
	DocumentTypeTabuExtract    DocumentType = "tabu_extract"
	DocumentTypeBuildingPermit DocumentType = "building_permit"
	DocumentTypeCondoPlan      DocumentType = "condo_plan"
	DocumentTypeAppraisal      DocumentType = "appraisal"
	DocumentTypeOther          DocumentType = "other"
)

// documentTypeNames maps document types to Hebrew display names
var documentTypeNames = map[DocumentType]string{
	DocumentTypeTabuExtract:    "נסח טאבו",
	DocumentTypeBuildingPermit: "היתר בנייה",
	DocumentTypeCondoPlan:      "תשריט בית משותף",
	DocumentTypeAppraisal:      "שומת מקרקעין",
	DocumentTypeOther:          "מסמך אחר",
}

// IsValid checks if the document type is valid
func (t DocumentType) IsValid() bool {
	_, ok := documentTypeNames[t]
	return ok
}

// DisplayName returns the Hebrew display name of the document type
func (t DocumentType) DisplayName() string {
	if name, ok := documentTypeNames[t]; ok {
		return name
	}
	return documentTypeNames[DocumentTypeOther]
}

// String returns the string representation of the document type
func (t DocumentType) String() string {
	return string(t)
}
