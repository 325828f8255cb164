package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrObligationNotFound = errors.New("obligation not found in assessment scope")
	ErrSummaryNotComputed = errors.New("gap summary has not been computed")

	// Status errors
	ErrAssessmentCompleted = errors.New("assessment is already completed")
	ErrInvalidStatus       = errors.New("operation not allowed in current status")
	ErrInvalidAnswer       = errors.New("invalid compliance answer")

	// Access control errors
	ErrAccessDenied = errors.New("access denied to assessment")

	// Patch errors
	ErrFieldNotAllowed = errors.New("field cannot be updated")
)

// Context keys for error values
const (
	AssessmentIDKey = "assessment_id"
	ObligationIDKey = "obligation_id"
)
