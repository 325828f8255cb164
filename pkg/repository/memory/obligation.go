package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

type obligationRepository struct {
	mu          sync.RWMutex
	obligations map[types.ObligationID]*model.Obligation
}

func newObligationRepository() *obligationRepository {
	return &obligationRepository{
		obligations: make(map[types.ObligationID]*model.Obligation),
	}
}

func copyObligation(obligation *model.Obligation) *model.Obligation {
	copied := *obligation
	copied.Conditions = append([]model.ConditionClause(nil), obligation.Conditions...)
	copied.RequiredEvidence = append([]string(nil), obligation.RequiredEvidence...)
	return &copied
}

func (r *obligationRepository) Create(ctx context.Context, obligation *model.Obligation) (*model.Obligation, error) {
	if err := obligation.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid obligation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyObligation(obligation)
	if existing, ok := r.obligations[created.ID]; ok {
		created.CreatedAt = existing.CreatedAt
	} else {
		created.CreatedAt = time.Now().UTC()
	}

	r.obligations[created.ID] = created
	return copyObligation(created), nil
}

func (r *obligationRepository) Get(ctx context.Context, id types.ObligationID) (*model.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obligation, exists := r.obligations[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "obligation not found", goerr.V("id", id))
	}

	return copyObligation(obligation), nil
}

func (r *obligationRepository) List(ctx context.Context) ([]*model.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obligations := make([]*model.Obligation, 0, len(r.obligations))
	for _, obligation := range r.obligations {
		obligations = append(obligations, copyObligation(obligation))
	}
	sort.Slice(obligations, func(i, j int) bool { return obligations[i].ID < obligations[j].ID })

	return obligations, nil
}

func (r *obligationRepository) FindByLawID(ctx context.Context, lawID types.LawID) ([]*model.Obligation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Obligation
	for _, obligation := range r.obligations {
		if obligation.LawID == lawID {
			result = append(result, copyObligation(obligation))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *obligationRepository) FindByIDs(ctx context.Context, ids []types.ObligationID) ([]*model.Obligation, error) {
	if len(ids) > interfaces.TagBatchLimit {
		return nil, goerr.New("id batch exceeds backend limit",
			goerr.V("count", len(ids)),
			goerr.V("limit", interfaces.TagBatchLimit),
		)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Obligation
	for _, id := range ids {
		if obligation, ok := r.obligations[id]; ok {
			result = append(result, copyObligation(obligation))
		}
	}

	return result, nil
}
