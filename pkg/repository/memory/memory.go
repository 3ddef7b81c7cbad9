package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = goerr.New("not found")

// Memory is an in-memory repository for development and testing
type Memory struct {
	session    *sessionRepository
	document   *documentRepository
	provenance *provenanceRepository
	comparable *comparableRepository
}

var _ interfaces.Repository = &Memory{}

// New creates a new in-memory repository
func New() *Memory {
	return &Memory{
		session:    newSessionRepository(),
		document:   newDocumentRepository(),
		provenance: newProvenanceRepository(),
		comparable: newComparableRepository(),
	}
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.session
}

func (m *Memory) Document() interfaces.DocumentRepository {
	return m.document
}

func (m *Memory) Provenance() interfaces.ProvenanceRepository {
	return m.provenance
}

func (m *Memory) Comparable() interfaces.ComparableRepository {
	return m.comparable
}

func (m *Memory) Close() error {
	return nil
}
