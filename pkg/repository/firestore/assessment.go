package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

type profileDoc struct {
	WorkplaceType      string   `firestore:"workplace_type"`
	EmployeeThreshold  string   `firestore:"employee_threshold"`
	HasContractor      bool     `firestore:"has_contractor"`
	MainActivity       []string `firestore:"main_activity"`
	MachineLevel       string   `firestore:"machine_level"`
	RiskProcess        []string `firestore:"risk_process"`
	EnvironmentAspect  []string `firestore:"environment_aspect"`
	EnergyUse          []string `firestore:"energy_use"`
	PublicHealthAspect []string `firestore:"public_health_aspect"`
}

type complianceRecordDoc struct {
	ObligationID string    `firestore:"obligation_id"`
	Status       string    `firestore:"status"`
	Note         string    `firestore:"note"`
	AnsweredAt   time.Time `firestore:"answered_at"`
}

type gapItemDoc struct {
	ObligationID   string `firestore:"obligation_id"`
	LawID          string `firestore:"law_id"`
	Category       string `firestore:"category"`
	Topic          string `firestore:"topic"`
	GapLevel       string `firestore:"gap_level"`
	RiskScore      int    `firestore:"risk_score"`
	Recommendation string `firestore:"recommendation"`
}

type categoryBreakdownDoc struct {
	Score  int `firestore:"score"`
	Red    int `firestore:"red"`
	Yellow int `firestore:"yellow"`
	Green  int `firestore:"green"`
}

type gapSummaryDoc struct {
	OverallScore int                             `firestore:"overall_score"`
	RedCount     int                             `firestore:"red_count"`
	YellowCount  int                             `firestore:"yellow_count"`
	GreenCount   int                             `firestore:"green_count"`
	ByCategory   map[string]categoryBreakdownDoc `firestore:"by_category"`
	Items        []gapItemDoc                    `firestore:"items"`
	Narrative    string                          `firestore:"narrative"`
	ComputedAt   time.Time                       `firestore:"computed_at"`
}

type assessmentDoc struct {
	ID                    string                         `firestore:"assessment_id"`
	CompanyID             string                         `firestore:"company_id"`
	OwnerUID              string                         `firestore:"owner_uid"`
	Profile               profileDoc                     `firestore:"profile"`
	ActivityTags          []string                       `firestore:"activity_tags"`
	ApplicableLaws        []string                       `firestore:"applicable_laws"`
	ApplicableObligations []string                       `firestore:"applicable_obligations"`
	ComplianceRecords     map[string]complianceRecordDoc `firestore:"compliance_records"`
	GapSummary            *gapSummaryDoc                 `firestore:"gap_summary"`
	Status                string                         `firestore:"status"`
	CreatedAt             time.Time                      `firestore:"created_at"`
	UpdatedAt             time.Time                      `firestore:"updated_at"`
}

func toProfileDoc(p *model.Profile) profileDoc {
	if p == nil {
		return profileDoc{}
	}
	return profileDoc{
		WorkplaceType:      string(p.WorkplaceType),
		EmployeeThreshold:  string(p.EmployeeThreshold),
		HasContractor:      p.HasContractor,
		MainActivity:       p.MainActivity,
		MachineLevel:       string(p.MachineLevel),
		RiskProcess:        p.RiskProcess,
		EnvironmentAspect:  p.EnvironmentAspect,
		EnergyUse:          p.EnergyUse,
		PublicHealthAspect: p.PublicHealthAspect,
	}
}

func fromProfileDoc(d profileDoc) *model.Profile {
	return &model.Profile{
		WorkplaceType:      types.WorkplaceType(d.WorkplaceType),
		EmployeeThreshold:  types.EmployeeBracket(d.EmployeeThreshold),
		HasContractor:      d.HasContractor,
		MainActivity:       d.MainActivity,
		MachineLevel:       types.MachineLevel(d.MachineLevel),
		RiskProcess:        d.RiskProcess,
		EnvironmentAspect:  d.EnvironmentAspect,
		EnergyUse:          d.EnergyUse,
		PublicHealthAspect: d.PublicHealthAspect,
	}
}

func toGapSummaryDoc(s *model.GapSummary) *gapSummaryDoc {
	if s == nil {
		return nil
	}
	doc := &gapSummaryDoc{
		OverallScore: s.OverallScore,
		RedCount:     s.RedCount,
		YellowCount:  s.YellowCount,
		GreenCount:   s.GreenCount,
		ByCategory:   make(map[string]categoryBreakdownDoc, len(s.ByCategory)),
		Narrative:    s.Narrative,
		ComputedAt:   s.ComputedAt,
	}
	for cat, bd := range s.ByCategory {
		doc.ByCategory[string(cat)] = categoryBreakdownDoc{
			Score:  bd.Score,
			Red:    bd.Red,
			Yellow: bd.Yellow,
			Green:  bd.Green,
		}
	}
	for _, item := range s.Items {
		doc.Items = append(doc.Items, gapItemDoc{
			ObligationID:   string(item.ObligationID),
			LawID:          string(item.LawID),
			Category:       string(item.Category),
			Topic:          item.Topic,
			GapLevel:       string(item.GapLevel),
			RiskScore:      item.RiskScore,
			Recommendation: item.Recommendation,
		})
	}
	return doc
}

func fromGapSummaryDoc(d *gapSummaryDoc) *model.GapSummary {
	if d == nil {
		return nil
	}
	summary := &model.GapSummary{
		OverallScore: d.OverallScore,
		RedCount:     d.RedCount,
		YellowCount:  d.YellowCount,
		GreenCount:   d.GreenCount,
		ByCategory:   make(map[types.Category]*model.CategoryBreakdown, len(d.ByCategory)),
		Narrative:    d.Narrative,
		ComputedAt:   d.ComputedAt,
	}
	for cat, bd := range d.ByCategory {
		summary.ByCategory[types.Category(cat)] = &model.CategoryBreakdown{
			Score:  bd.Score,
			Red:    bd.Red,
			Yellow: bd.Yellow,
			Green:  bd.Green,
		}
	}
	for _, item := range d.Items {
		summary.Items = append(summary.Items, model.GapItem{
			ObligationID:   types.ObligationID(item.ObligationID),
			LawID:          types.LawID(item.LawID),
			Category:       types.Category(item.Category),
			Topic:          item.Topic,
			GapLevel:       types.GapLevel(item.GapLevel),
			RiskScore:      item.RiskScore,
			Recommendation: item.Recommendation,
		})
	}
	return summary
}

func toAssessmentDoc(a *model.Assessment) *assessmentDoc {
	doc := &assessmentDoc{
		ID:                string(a.ID),
		CompanyID:         string(a.CompanyID),
		OwnerUID:          a.OwnerUID,
		Profile:           toProfileDoc(a.Profile),
		ComplianceRecords: make(map[string]complianceRecordDoc, len(a.ComplianceRecords)),
		GapSummary:        toGapSummaryDoc(a.GapSummary),
		Status:            string(a.Status),
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	for _, t := range a.ActivityTags {
		doc.ActivityTags = append(doc.ActivityTags, string(t))
	}
	for _, id := range a.ApplicableLaws {
		doc.ApplicableLaws = append(doc.ApplicableLaws, string(id))
	}
	for _, id := range a.ApplicableObligations {
		doc.ApplicableObligations = append(doc.ApplicableObligations, string(id))
	}
	for id, rec := range a.ComplianceRecords {
		doc.ComplianceRecords[string(id)] = complianceRecordDoc{
			ObligationID: string(rec.ObligationID),
			Status:       string(rec.Status),
			Note:         rec.Note,
			AnsweredAt:   rec.AnsweredAt,
		}
	}
	return doc
}

func fromAssessmentDoc(d *assessmentDoc) *model.Assessment {
	a := &model.Assessment{
		ID:                types.AssessmentID(d.ID),
		CompanyID:         types.CompanyID(d.CompanyID),
		OwnerUID:          d.OwnerUID,
		Profile:           fromProfileDoc(d.Profile),
		ComplianceRecords: make(map[types.ObligationID]*model.ComplianceRecord, len(d.ComplianceRecords)),
		GapSummary:        fromGapSummaryDoc(d.GapSummary),
		Status:            types.AssessmentStatus(d.Status),
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	for _, t := range d.ActivityTags {
		a.ActivityTags = append(a.ActivityTags, types.Tag(t))
	}
	for _, id := range d.ApplicableLaws {
		a.ApplicableLaws = append(a.ApplicableLaws, types.LawID(id))
	}
	for _, id := range d.ApplicableObligations {
		a.ApplicableObligations = append(a.ApplicableObligations, types.ObligationID(id))
	}
	for id, rec := range d.ComplianceRecords {
		a.ComplianceRecords[types.ObligationID(id)] = &model.ComplianceRecord{
			ObligationID: types.ObligationID(rec.ObligationID),
			Status:       types.ComplianceStatus(rec.Status),
			Note:         rec.Note,
			AnsweredAt:   rec.AnsweredAt,
		}
	}
	return a
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{client: client}
}

func (r *assessmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	created := assessment.Clone()
	if created.ID == "" {
		created.ID = types.NewAssessmentID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toAssessmentDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.Assessment, error) {
	doc, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var aDoc assessmentDoc
	if err := doc.DataTo(&aDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}

	return fromAssessmentDoc(&aDoc), nil
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(assessment.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", assessment.ID))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", assessment.ID))
	}

	var existing assessmentDoc
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", assessment.ID))
	}

	updated := assessment.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, toAssessmentDoc(updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V("id", assessment.ID))
	}

	return updated, nil
}

func (r *assessmentRepository) PutRecord(ctx context.Context, id types.AssessmentID, record *model.ComplianceRecord) (*model.Assessment, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(id))

	// Field-path update touches only this record's map entry, so
	// concurrent answers to other obligations are preserved
	updates := []firestore.Update{
		{
			FieldPath: firestore.FieldPath{"compliance_records", string(record.ObligationID)},
			Value: complianceRecordDoc{
				ObligationID: string(record.ObligationID),
				Status:       string(record.Status),
				Note:         record.Note,
				AnsweredAt:   record.AnsweredAt,
			},
		},
		{Path: "updated_at", Value: time.Now().UTC()},
	}
	if _, err := docRef.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to record answer", goerr.V("id", id))
	}

	return r.Get(ctx, id)
}

func (r *assessmentRepository) ListByCompany(ctx context.Context, companyID types.CompanyID) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.collection()).
		Where("company_id", "==", string(companyID)).
		OrderBy("updated_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments", goerr.V("company_id", companyID))
		}

		var aDoc assessmentDoc
		if err := doc.DataTo(&aDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}
		assessments = append(assessments, fromAssessmentDoc(&aDoc))
	}

	return assessments, nil
}
