package interfaces

import (
	"context"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

type AssessmentRepository interface {
	// Create persists a new assessment, generating an ID when absent
	Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error)

	// Update replaces the stored assessment document
	Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error)

	// PutRecord merges a single compliance record into the stored
	// assessment without rewriting the rest of the document, so answers
	// to different obligations can be submitted in parallel
	PutRecord(ctx context.Context, id types.AssessmentID, record *model.ComplianceRecord) (*model.Assessment, error)

	// ListByCompany retrieves all assessments owned by a company
	ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Assessment, error)
}
