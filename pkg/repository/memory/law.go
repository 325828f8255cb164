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

type lawRepository struct {
	mu   sync.RWMutex
	laws map[types.LawID]*model.Law
}

func newLawRepository() *lawRepository {
	return &lawRepository{
		laws: make(map[types.LawID]*model.Law),
	}
}

func copyLaw(law *model.Law) *model.Law {
	copied := *law
	copied.ApplicableTags = append([]types.Tag(nil), law.ApplicableTags...)
	return &copied
}

func (r *lawRepository) Create(ctx context.Context, law *model.Law) (*model.Law, error) {
	if err := law.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid law")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyLaw(law)
	if existing, ok := r.laws[created.ID]; ok {
		created.CreatedAt = existing.CreatedAt
	} else {
		created.CreatedAt = now
	}
	created.UpdatedAt = now

	r.laws[created.ID] = created
	return copyLaw(created), nil
}

func (r *lawRepository) Get(ctx context.Context, id types.LawID) (*model.Law, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	law, exists := r.laws[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "law not found", goerr.V("id", id))
	}

	return copyLaw(law), nil
}

func (r *lawRepository) List(ctx context.Context) ([]*model.Law, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	laws := make([]*model.Law, 0, len(r.laws))
	for _, law := range r.laws {
		laws = append(laws, copyLaw(law))
	}
	sort.Slice(laws, func(i, j int) bool { return laws[i].ID < laws[j].ID })

	return laws, nil
}

func (r *lawRepository) FindByAnyTag(ctx context.Context, tags []types.Tag) ([]*model.Law, error) {
	if len(tags) > interfaces.TagBatchLimit {
		return nil, goerr.New("tag batch exceeds backend limit",
			goerr.V("count", len(tags)),
			goerr.V("limit", interfaces.TagBatchLimit),
		)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Law
	for _, law := range r.laws {
		if law.MatchesAnyTag(tags) {
			result = append(result, copyLaw(law))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}
