package usecase

import (
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
)

func (uc *ProvenanceUseCase) BeginLoad(sessionID types.SessionID) int64 {
	return uc.beginLoad(sessionID)
}

func (uc *ProvenanceUseCase) Commit(sessionID types.SessionID, gen int64, snapshot *model.Snapshot) {
	uc.commit(sessionID, gen, snapshot)
}

var ApplyValue = applyValue
