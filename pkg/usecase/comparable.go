package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/shamay-ai/mekorot/pkg/domain/interfaces"
	"github.com/shamay-ai/mekorot/pkg/domain/model"
	"github.com/shamay-ai/mekorot/pkg/domain/types"
	"github.com/shamay-ai/mekorot/pkg/service/compstats"
)

// ComparableUseCase manages comparable sales and their summary statistics
type ComparableUseCase struct {
	repo interfaces.Repository
}

func NewComparableUseCase(repo interfaces.Repository) *ComparableUseCase {
	return &ComparableUseCase{repo: repo}
}

func (uc *ComparableUseCase) AddComparable(ctx context.Context, sessionID types.SessionID, address string, saleDate time.Time, areaSqm, price float64) (*model.Comparable, error) {
	if address == "" {
		return nil, goerr.Wrap(ErrEmptyAddress, "comparable address is required", goerr.V(SessionIDKey, sessionID))
	}
	if areaSqm <= 0 {
		return nil, goerr.New("comparable area must be positive", goerr.V(SessionIDKey, sessionID), goerr.V("area_sqm", areaSqm))
	}
	if price <= 0 {
		return nil, goerr.New("comparable price must be positive", goerr.V(SessionIDKey, sessionID), goerr.V("price", price))
	}

	if _, err := uc.repo.Session().Get(ctx, sessionID); err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}

	created, err := uc.repo.Comparable().Create(ctx, &model.Comparable{
		SessionID: sessionID,
		Address:   address,
		SaleDate:  saleDate,
		AreaSqm:   areaSqm,
		Price:     price,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create comparable", goerr.V(SessionIDKey, sessionID))
	}
	return created, nil
}

func (uc *ComparableUseCase) ListComparables(ctx context.Context, sessionID types.SessionID) ([]*model.Comparable, error) {
	comps, err := uc.repo.Comparable().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comparables", goerr.V(SessionIDKey, sessionID))
	}
	return comps, nil
}

func (uc *ComparableUseCase) DeleteComparable(ctx context.Context, id types.ComparableID) error {
	if err := uc.repo.Comparable().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete comparable", goerr.V("comparable_id", id))
	}
	return nil
}

// Stats summarizes the unit prices of a session's comparables. Sigma is the
// outlier threshold in standard deviations; sigma <= 0 uses the default.
func (uc *ComparableUseCase) Stats(ctx context.Context, sessionID types.SessionID, sigma float64) (*compstats.Summary, error) {
	comps, err := uc.repo.Comparable().ListBySession(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list comparables", goerr.V(SessionIDKey, sessionID))
	}

	values := make([]float64, 0, len(comps))
	for _, c := range comps {
		if unit := c.PricePerSqm(); unit > 0 {
			values = append(values, unit)
		}
	}

	summary := compstats.Summarize(values, sigma)
	return &summary, nil
}
