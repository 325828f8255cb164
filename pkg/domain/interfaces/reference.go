package interfaces

import (
	"context"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

// TagBatchLimit is the maximum number of keys per backend query. Firestore
// caps array-contains-any and IN clauses at 10 members; callers split larger
// key sets into batches and deduplicate the merged results.
const TagBatchLimit = 10

type LawRepository interface {
	// Create upserts a law document
	Create(ctx context.Context, law *model.Law) (*model.Law, error)

	// Get retrieves a law by ID
	Get(ctx context.Context, id types.LawID) (*model.Law, error)

	// List retrieves all laws
	List(ctx context.Context) ([]*model.Law, error)

	// FindByAnyTag retrieves laws declaring at least one of the given tags.
	// The caller must keep len(tags) within TagBatchLimit.
	FindByAnyTag(ctx context.Context, tags []types.Tag) ([]*model.Law, error)
}

type ObligationRepository interface {
	// Create upserts an obligation document
	Create(ctx context.Context, obligation *model.Obligation) (*model.Obligation, error)

	// Get retrieves an obligation by ID
	Get(ctx context.Context, id types.ObligationID) (*model.Obligation, error)

	// List retrieves all obligations
	List(ctx context.Context) ([]*model.Obligation, error)

	// FindByLawID retrieves all obligations attached to a law
	FindByLawID(ctx context.Context, lawID types.LawID) ([]*model.Obligation, error)

	// FindByIDs retrieves obligations by ID. The caller must keep len(ids)
	// within TagBatchLimit.
	FindByIDs(ctx context.Context, ids []types.ObligationID) ([]*model.Obligation, error)
}
