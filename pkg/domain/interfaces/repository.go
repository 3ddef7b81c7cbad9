package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Session() SessionRepository
	Document() DocumentRepository
	Provenance() ProvenanceRepository
	Comparable() ComparableRepository

	// Close releases backend resources held by the repository
	Close() error
}
