package usecase

import (
	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/service/narrative"
)

type UseCases struct {
	repo      interfaces.Repository
	narrative interfaces.NarrativeService

	Assessment *AssessmentUseCase
}

type Option func(*UseCases)

// WithNarrative injects the AI narrative generator used by gap analysis.
// Without it the gap summary carries the static fallback text.
func WithNarrative(svc interfaces.NarrativeService) Option {
	return func(uc *UseCases) {
		uc.narrative = svc
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.narrative == nil {
		uc.narrative = narrative.New(nil)
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.narrative)

	return uc
}
