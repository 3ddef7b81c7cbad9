package types

// ExtractionMethod describes how a provenance record obtained its value.
// "manual" is the only distinguished value: any other tag names the AI
// pipeline that produced the record (e.g. "openai", "gemini", "vision").
type ExtractionMethod string

const (
	// ExtractionManual marks a value entered or verified by a human
	ExtractionManual ExtractionMethod = "manual"
)

// IsManual reports whether the record was produced by a human
func (m ExtractionMethod) IsManual() bool {
	return m == ExtractionManual
}

// String returns the string representation of the extraction method
func (m ExtractionMethod) String() string {
	return string(m)
}
