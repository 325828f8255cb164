package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = goerr.New("not found")

// Memory is the in-memory repository backend used for tests and development
type Memory struct {
	assessment *assessmentRepository
	law        *lawRepository
	obligation *obligationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		assessment: newAssessmentRepository(),
		law:        newLawRepository(),
		obligation: newObligationRepository(),
	}
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Law() interfaces.LawRepository {
	return m.law
}

func (m *Memory) Obligation() interfaces.ObligationRepository {
	return m.obligation
}

func (m *Memory) Close() error {
	return nil
}
