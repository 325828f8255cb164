package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[types.AssessmentID]*model.Assessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[types.AssessmentID]*model.Assessment),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := assessment.Clone()
	if created.ID == "" {
		created.ID = types.NewAssessmentID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.assessments[created.ID] = created
	return created.Clone(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return assessment.Clone(), nil
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[assessment.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", assessment.ID))
	}

	updated := assessment.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assessments[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *assessmentRepository) PutRecord(ctx context.Context, id types.AssessmentID, record *model.ComplianceRecord) (*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	// Merge under the write lock so answers to different obligations
	// never overwrite each other
	rec := *record
	existing.Answer(&rec)
	existing.UpdatedAt = time.Now().UTC()

	return existing.Clone(), nil
}

func (r *assessmentRepository) ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Assessment
	for _, assessment := range r.assessments {
		if assessment.CompanyID == companyID {
			result = append(result, assessment.Clone())
		}
	}

	// Newest first, matching the backend index order
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}
