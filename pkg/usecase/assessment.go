package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/model/auth"
	"github.com/sheqworks/themis/pkg/domain/types"
	"github.com/sheqworks/themis/pkg/engine/applicability"
	"github.com/sheqworks/themis/pkg/engine/recommend"
	"github.com/sheqworks/themis/pkg/engine/scoring"
	"github.com/sheqworks/themis/pkg/engine/tagging"
	"github.com/sheqworks/themis/pkg/repository/firestore"
	"github.com/sheqworks/themis/pkg/repository/memory"
)

type AssessmentUseCase struct {
	repo      interfaces.Repository
	narrative interfaces.NarrativeService
}

func NewAssessmentUseCase(repo interfaces.Repository, narrative interfaces.NarrativeService) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:      repo,
		narrative: narrative,
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

// CreateAssessment starts a new assessment cycle from an intake profile.
// Activity tags are derived immediately, so a freshly created assessment is
// already in the mapping stage.
func (uc *AssessmentUseCase) CreateAssessment(ctx context.Context, companyID types.CompanyID, profile *model.Profile) (*model.Assessment, error) {
	if profile == nil {
		return nil, goerr.New("profile is required")
	}
	if !profile.EmployeeThreshold.IsValid() {
		return nil, goerr.New("invalid employee threshold", goerr.V("value", profile.EmployeeThreshold))
	}

	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		token = auth.NewAnonymousUser()
	}

	assessment := &model.Assessment{
		CompanyID:         companyID,
		OwnerUID:          token.Sub,
		Profile:           profile.Clone(),
		ActivityTags:      tagging.Derive(profile),
		ComplianceRecords: make(map[types.ObligationID]*model.ComplianceRecord),
		Status:            types.StatusMapping,
	}

	created, err := uc.repo.Assessment().Create(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment")
	}

	return created, nil
}

func (uc *AssessmentUseCase) getOwned(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(ErrAssessmentNotFound, "invalid assessment ID", goerr.V(AssessmentIDKey, id))
	}

	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, goerr.Wrap(ErrAssessmentNotFound, "assessment not found", goerr.V(AssessmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V(AssessmentIDKey, id))
	}

	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		token = auth.NewAnonymousUser()
	}
	if assessment.OwnerUID != "" && assessment.OwnerUID != token.Sub {
		return nil, goerr.Wrap(ErrAccessDenied, "assessment belongs to another user", goerr.V(AssessmentIDKey, id))
	}

	return assessment, nil
}

// GetAssessment retrieves an assessment owned by the requesting user
func (uc *AssessmentUseCase) GetAssessment(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	return uc.getOwned(ctx, id)
}

// ListAssessments retrieves all assessments of a company owned by the
// requesting user
func (uc *AssessmentUseCase) ListAssessments(ctx context.Context, companyID types.CompanyID) ([]*model.Assessment, error) {
	token, err := auth.TokenFromContext(ctx)
	if err != nil {
		token = auth.NewAnonymousUser()
	}

	assessments, err := uc.repo.Assessment().ListByCompany(ctx, companyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments", goerr.V("company_id", companyID))
	}

	owned := make([]*model.Assessment, 0, len(assessments))
	for _, a := range assessments {
		if a.OwnerUID == "" || a.OwnerUID == token.Sub {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

// AssessmentPatch carries the updatable fields of an assessment. Nil fields
// are left untouched.
type AssessmentPatch struct {
	Profile *model.Profile          `json:"profile,omitempty"`
	Status  *types.AssessmentStatus `json:"status,omitempty"`
}

var allowedPatchFields = map[string]struct{}{
	"profile": {},
	"status":  {},
}

// ValidatePatchFields rejects any patch key outside the updatable set.
// Applicable scope, answers and the gap summary are derived state and can
// only change through their own operations.
func ValidatePatchFields(keys []string) error {
	for _, key := range keys {
		if _, ok := allowedPatchFields[key]; !ok {
			return goerr.Wrap(ErrFieldNotAllowed, "field is not updatable", goerr.V("field", key))
		}
	}
	return nil
}

// UpdateAssessment applies a partial update. Replacing the profile re-derives
// the activity tags and drops the resolved scope, answers and summary back to
// the mapping stage: scoring state computed from the old profile must not
// survive a profile change.
func (uc *AssessmentUseCase) UpdateAssessment(ctx context.Context, id types.AssessmentID, patch *AssessmentPatch) (*model.Assessment, error) {
	assessment, err := uc.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Profile != nil {
		if !patch.Profile.EmployeeThreshold.IsValid() {
			return nil, goerr.New("invalid employee threshold", goerr.V("value", patch.Profile.EmployeeThreshold))
		}
		assessment.Profile = patch.Profile.Clone()
		assessment.ActivityTags = tagging.Derive(patch.Profile)
		assessment.ApplicableLaws = nil
		assessment.ApplicableObligations = nil
		assessment.ComplianceRecords = make(map[types.ObligationID]*model.ComplianceRecord)
		assessment.GapSummary = nil
		assessment.Status = types.StatusMapping
	}

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, goerr.Wrap(ErrInvalidStatus, "unknown assessment status", goerr.V("status", *patch.Status))
		}
		assessment.Status = *patch.Status
	}

	updated, err := uc.repo.Assessment().Update(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V(AssessmentIDKey, id))
	}

	return updated, nil
}

// RunLegalMapping resolves the applicable laws and obligations from the
// assessment's activity tags and advances it to the checklist stage. Running
// it again replaces the previous scope; answers already given for obligations
// that remain in scope are kept.
func (uc *AssessmentUseCase) RunLegalMapping(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	assessment, err := uc.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.Status == types.StatusCompleted {
		return nil, goerr.Wrap(ErrAssessmentCompleted, "completed assessment cannot be remapped", goerr.V(AssessmentIDKey, id))
	}
	if assessment.Profile == nil {
		return nil, goerr.Wrap(ErrInvalidStatus, "assessment has no profile", goerr.V(AssessmentIDKey, id))
	}

	result, err := applicability.Resolve(ctx, assessment.ActivityTags, assessment.Profile, uc.repo.Law(), uc.repo.Obligation())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve applicable laws", goerr.V(AssessmentIDKey, id))
	}

	inScope := make(map[types.ObligationID]struct{}, len(result.Obligations))
	for _, oblID := range result.Obligations {
		inScope[oblID] = struct{}{}
	}
	for oblID := range assessment.ComplianceRecords {
		if _, ok := inScope[oblID]; !ok {
			delete(assessment.ComplianceRecords, oblID)
		}
	}

	assessment.ApplicableLaws = result.Laws
	assessment.ApplicableObligations = result.Obligations
	assessment.Status = types.StatusChecklist

	updated, err := uc.repo.Assessment().Update(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save legal mapping", goerr.V(AssessmentIDKey, id))
	}

	return updated, nil
}

// fetchObligations loads the obligations in the assessment's scope order.
// Lookups are batched at the backend key limit and issued concurrently.
func (uc *AssessmentUseCase) fetchObligations(ctx context.Context, ids []types.ObligationID) ([]*model.Obligation, error) {
	var batches [][]types.ObligationID
	for rest := ids; len(rest) > 0; {
		n := min(len(rest), interfaces.TagBatchLimit)
		batches = append(batches, rest[:n])
		rest = rest[n:]
	}

	results := make([][]*model.Obligation, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		g.Go(func() error {
			found, err := uc.repo.Obligation().FindByIDs(gctx, batch)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch obligations", goerr.V("ids", batch))
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Backends do not guarantee result order for keyed lookups, so restore
	// the requested scope order here
	byID := make(map[types.ObligationID]*model.Obligation, len(ids))
	for _, batch := range results {
		for _, obl := range batch {
			byID[obl.ID] = obl
		}
	}
	obligations := make([]*model.Obligation, 0, len(ids))
	for _, id := range ids {
		if obl, ok := byID[id]; ok {
			obligations = append(obligations, obl)
		}
	}
	return obligations, nil
}

// ChecklistItem pairs one in-scope obligation with its current answer, if any
type ChecklistItem struct {
	Obligation *model.Obligation       `json:"obligation"`
	Record     *model.ComplianceRecord `json:"record,omitempty"`
}

// Checklist is the questionnaire view of an assessment. Progress counts
// answered records only; Answered against len(Items) tells how much of the
// scope is still open.
type Checklist struct {
	AssessmentID types.AssessmentID                  `json:"assessment_id"`
	Status       types.AssessmentStatus              `json:"status"`
	Items        []ChecklistItem                     `json:"items"`
	Answered     int                                 `json:"answered"`
	Progress     scoring.Progress                    `json:"progress"`
	ByCategory   map[types.Category]scoring.Progress `json:"by_category"`
}

// GetChecklist returns the in-scope obligations in resolution order together
// with existing answers and progress counters
func (uc *AssessmentUseCase) GetChecklist(ctx context.Context, id types.AssessmentID) (*Checklist, error) {
	assessment, err := uc.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.Status == types.StatusMapping || assessment.Status == types.StatusProfiling {
		return nil, goerr.Wrap(ErrInvalidStatus, "legal mapping has not been run", goerr.V(AssessmentIDKey, id))
	}

	obligations, err := uc.fetchObligations(ctx, assessment.ApplicableObligations)
	if err != nil {
		return nil, err
	}

	checklist := &Checklist{
		AssessmentID: assessment.ID,
		Status:       assessment.Status,
		Items:        make([]ChecklistItem, 0, len(obligations)),
	}
	byID := make(map[types.ObligationID]*model.Obligation, len(obligations))
	for _, obl := range obligations {
		byID[obl.ID] = obl
		checklist.Items = append(checklist.Items, ChecklistItem{
			Obligation: obl,
			Record:     assessment.ComplianceRecords[obl.ID],
		})
	}

	checklist.Answered = len(assessment.ComplianceRecords)
	checklist.Progress = scoring.ComputeProgress(assessment.ComplianceRecords)
	checklist.ByCategory = scoring.ComputeProgressByCategory(assessment.ComplianceRecords, byID)

	return checklist, nil
}

// SubmitAnswer records one compliance answer. Answers may be revised until
// the assessment completes.
func (uc *AssessmentUseCase) SubmitAnswer(ctx context.Context, id types.AssessmentID, obligationID types.ObligationID, status types.ComplianceStatus, note string) (*model.Assessment, error) {
	if !status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidAnswer, "unknown compliance status", goerr.V("status", status))
	}

	assessment, err := uc.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	switch assessment.Status {
	case types.StatusChecklist, types.StatusGapAnalysis:
	case types.StatusCompleted:
		return nil, goerr.Wrap(ErrAssessmentCompleted, "completed assessment cannot accept answers", goerr.V(AssessmentIDKey, id))
	default:
		return nil, goerr.Wrap(ErrInvalidStatus, "checklist is not open", goerr.V(AssessmentIDKey, id), goerr.V("status", assessment.Status))
	}

	inScope := false
	for _, oblID := range assessment.ApplicableObligations {
		if oblID == obligationID {
			inScope = true
			break
		}
	}
	if !inScope {
		return nil, goerr.Wrap(ErrObligationNotFound, "obligation is not in assessment scope",
			goerr.V(AssessmentIDKey, id),
			goerr.V(ObligationIDKey, obligationID))
	}

	// Merge only this record so parallel answers to other obligations in
	// the same assessment are never lost
	updated, err := uc.repo.Assessment().PutRecord(ctx, id, &model.ComplianceRecord{
		ObligationID: obligationID,
		Status:       status,
		Note:         note,
		AnsweredAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save answer", goerr.V(AssessmentIDKey, id))
	}

	return updated, nil
}

// RunGapAnalysis scores every in-scope obligation and attaches the gap
// summary. Obligations without an answer are scored as non-compliant.
// The numeric result is deterministic for a given set of answers, so
// re-running on a completed assessment simply recomputes the summary.
func (uc *AssessmentUseCase) RunGapAnalysis(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	assessment, err := uc.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.Status == types.StatusMapping || assessment.Status == types.StatusProfiling {
		return nil, goerr.Wrap(ErrInvalidStatus, "legal mapping has not been run", goerr.V(AssessmentIDKey, id))
	}

	obligations, err := uc.fetchObligations(ctx, assessment.ApplicableObligations)
	if err != nil {
		return nil, err
	}

	items := make([]model.GapItem, 0, len(obligations))
	for _, obl := range obligations {
		status := types.ComplianceNo
		if rec, ok := assessment.ComplianceRecords[obl.ID]; ok {
			status = rec.Status
		}

		level, score := scoring.Score(status, obl.RiskWeight)
		items = append(items, model.GapItem{
			ObligationID:   obl.ID,
			LawID:          obl.LawID,
			Category:       obl.Category,
			Topic:          obl.Topic(),
			GapLevel:       level,
			RiskScore:      score,
			Recommendation: recommend.Recommend(obl.Category, level, obl.RequiredEvidence),
		})
	}

	summary := scoring.Aggregate(items, time.Now().UTC())

	var critical []model.GapItem
	for _, item := range items {
		if item.GapLevel == types.GapRed {
			critical = append(critical, item)
		}
	}
	summary.Narrative = uc.narrative.Summarize(ctx, assessment.Profile, critical)

	assessment.GapSummary = summary
	assessment.Status = types.StatusCompleted

	updated, err := uc.repo.Assessment().Update(ctx, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save gap analysis", goerr.V(AssessmentIDKey, id))
	}

	return updated, nil
}

// GetSummary returns the computed gap summary
func (uc *AssessmentUseCase) GetSummary(ctx context.Context, id types.AssessmentID) (*model.GapSummary, error) {
	assessment, err := uc.getOwned(ctx, id)
	if err != nil {
		return nil, err
	}
	if assessment.GapSummary == nil {
		return nil, goerr.Wrap(ErrSummaryNotComputed, "gap analysis has not been run", goerr.V(AssessmentIDKey, id))
	}
	return assessment.GapSummary, nil
}
