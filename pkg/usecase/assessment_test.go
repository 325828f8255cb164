package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"golang.org/x/sync/errgroup"

	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/model/auth"
	"github.com/sheqworks/themis/pkg/domain/types"
	"github.com/sheqworks/themis/pkg/repository/memory"
	"github.com/sheqworks/themis/pkg/service/narrative"
	"github.com/sheqworks/themis/pkg/usecase"
)

func setupTest(t *testing.T) (*memory.Memory, *usecase.UseCases) {
	t.Helper()
	repo := memory.New()
	uc := usecase.New(repo)
	return repo, uc
}

func seedKnowledgeBase(t *testing.T, repo *memory.Memory) {
	t.Helper()
	ctx := context.Background()

	laws := []*model.Law{
		{
			ID:             "law-factory",
			Name:           "พ.ร.บ. โรงงาน",
			Category:       types.CategorySafety,
			ApplicableTags: []types.Tag{"factory"},
		},
		{
			ID:             "law-osh",
			Name:           "พ.ร.บ. ความปลอดภัย อาชีวอนามัย",
			Category:       types.CategorySafety,
			ApplicableTags: []types.Tag{"factory", "has_contractor"},
		},
		{
			ID:             "law-env",
			Name:           "พ.ร.บ. ส่งเสริมและรักษาคุณภาพสิ่งแวดล้อม",
			Category:       types.CategoryEnvironment,
			ApplicableTags: []types.Tag{"wastewater"},
		},
	}
	for _, law := range laws {
		_, err := repo.Law().Create(ctx, law)
		gt.NoError(t, err).Required()
	}

	obligations := []*model.Obligation{
		{
			ID:                "obl-safety-officer",
			LawID:             "law-osh",
			Category:          types.CategorySafety,
			RiskWeight:        types.RiskWeightHigh,
			ChecklistQuestion: "มีเจ้าหน้าที่ความปลอดภัยระดับวิชาชีพหรือไม่",
			RequiredEvidence:  []string{"คำสั่งแต่งตั้ง จป. วิชาชีพ"},
		},
		{
			ID:                "obl-training",
			LawID:             "law-osh",
			Category:          types.CategorySafety,
			RiskWeight:        types.RiskWeightLow,
			ChecklistQuestion: "มีการอบรมความปลอดภัยพนักงานใหม่หรือไม่",
		},
		{
			ID:                "obl-license",
			LawID:             "law-factory",
			Category:          types.CategorySafety,
			RiskWeight:        types.RiskWeightHigh,
			ChecklistQuestion: "มีใบอนุญาตประกอบกิจการโรงงานหรือไม่",
			Conditions: []model.ConditionClause{
				{Kind: types.ClauseMachineLevel, MachineLevel: types.MachineOver75HP},
			},
		},
	}
	for _, obl := range obligations {
		_, err := repo.Obligation().Create(ctx, obl)
		gt.NoError(t, err).Required()
	}
}

func factoryProfile() *model.Profile {
	return &model.Profile{
		WorkplaceType:     types.WorkplaceFactory,
		EmployeeThreshold: types.Employee50to99,
		HasContractor:     true,
		MachineLevel:      types.MachineOver75HP,
	}
}

func userContext(sub string) context.Context {
	return auth.ContextWithToken(context.Background(), &auth.Token{Sub: sub})
}

func TestCreateAssessment(t *testing.T) {
	t.Run("derives tags and starts in mapping", func(t *testing.T) {
		_, uc := setupTest(t)

		created, err := uc.Assessment.CreateAssessment(userContext("user-1"), "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.Value(t, created.OwnerUID).Equal("user-1")
		gt.Value(t, created.Status).Equal(types.StatusMapping)
		gt.Array(t, created.ActivityTags).Has(types.Tag("factory"))
		gt.Array(t, created.ActivityTags).Has(types.Tag("has_contractor"))
		gt.Value(t, created.GapSummary).Equal((*model.GapSummary)(nil))
	})

	t.Run("requires a profile", func(t *testing.T) {
		_, uc := setupTest(t)

		_, err := uc.Assessment.CreateAssessment(userContext("user-1"), "company-1", nil)
		gt.Error(t, err)
	})

	t.Run("rejects unknown employee bracket", func(t *testing.T) {
		_, uc := setupTest(t)

		profile := factoryProfile()
		profile.EmployeeThreshold = "about fifty"
		_, err := uc.Assessment.CreateAssessment(userContext("user-1"), "company-1", profile)
		gt.Error(t, err)
	})

	t.Run("without auth token falls back to anonymous", func(t *testing.T) {
		_, uc := setupTest(t)

		created, err := uc.Assessment.CreateAssessment(context.Background(), "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		gt.Value(t, created.OwnerUID).Equal(auth.AnonymousSub)
	})
}

func TestGetAssessment(t *testing.T) {
	t.Run("owner can read", func(t *testing.T) {
		_, uc := setupTest(t)
		created, err := uc.Assessment.CreateAssessment(userContext("user-1"), "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		got, err := uc.Assessment.GetAssessment(userContext("user-1"), created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)
	})

	t.Run("other user is denied", func(t *testing.T) {
		_, uc := setupTest(t)
		created, err := uc.Assessment.CreateAssessment(userContext("user-1"), "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.GetAssessment(userContext("user-2"), created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrAccessDenied)).True()
	})

	t.Run("unknown ID maps to not found", func(t *testing.T) {
		_, uc := setupTest(t)

		_, err := uc.Assessment.GetAssessment(userContext("user-1"), "no-such-id")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrAssessmentNotFound)).True()
	})
}

func TestUpdateAssessment(t *testing.T) {
	t.Run("patch field allow-list", func(t *testing.T) {
		gt.NoError(t, usecase.ValidatePatchFields([]string{"profile", "status"}))

		err := usecase.ValidatePatchFields([]string{"gap_summary"})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrFieldNotAllowed)).True()

		err = usecase.ValidatePatchFields([]string{"applicable_laws"})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrFieldNotAllowed)).True()
	})

	t.Run("profile change re-derives tags and resets scope", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")

		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		mapped, err := uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, mapped.Status).Equal(types.StatusChecklist)

		newProfile := &model.Profile{
			WorkplaceType:     types.WorkplaceOffice,
			EmployeeThreshold: types.EmployeeUnder10,
		}
		updated, err := uc.Assessment.UpdateAssessment(ctx, created.ID, &usecase.AssessmentPatch{
			Profile: newProfile,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Status).Equal(types.StatusMapping)
		gt.Array(t, updated.ActivityTags).Equal([]types.Tag{"office"})
		gt.Array(t, updated.ApplicableLaws).Length(0)
		gt.Array(t, updated.ApplicableObligations).Length(0)
		gt.Value(t, updated.GapSummary).Equal((*model.GapSummary)(nil))
	})

	t.Run("status patch validates the value", func(t *testing.T) {
		_, uc := setupTest(t)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		bad := types.AssessmentStatus("paused")
		_, err = uc.Assessment.UpdateAssessment(ctx, created.ID, &usecase.AssessmentPatch{Status: &bad})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidStatus)).True()

		good := types.StatusChecklist
		updated, err := uc.Assessment.UpdateAssessment(ctx, created.ID, &usecase.AssessmentPatch{Status: &good})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.StatusChecklist)
	})
}

func TestRunLegalMapping(t *testing.T) {
	t.Run("resolves scope and advances to checklist", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")

		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		mapped, err := uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, mapped.Status).Equal(types.StatusChecklist)
		gt.Array(t, mapped.ApplicableLaws).Has(types.LawID("law-factory"))
		gt.Array(t, mapped.ApplicableLaws).Has(types.LawID("law-osh"))
		gt.Array(t, mapped.ApplicableObligations).Length(3)
	})

	t.Run("machine condition excludes obligation for light machinery", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")

		profile := factoryProfile()
		profile.MachineLevel = types.MachineUnder75
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", profile)
		gt.NoError(t, err).Required()

		mapped, err := uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()

		for _, id := range mapped.ApplicableObligations {
			gt.Value(t, id).NotEqual(types.ObligationID("obl-license"))
		}
	})

	t.Run("remapping prunes answers that left the scope", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")

		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.SubmitAnswer(ctx, created.ID, "obl-license", types.ComplianceYes, "")
		gt.NoError(t, err).Required()

		// Dropping the heavy machinery removes obl-license from scope
		profile := factoryProfile()
		profile.MachineLevel = types.MachineUnder75
		_, err = uc.Assessment.UpdateAssessment(ctx, created.ID, &usecase.AssessmentPatch{Profile: profile})
		gt.NoError(t, err).Required()

		remapped, err := uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()

		_, kept := remapped.ComplianceRecords["obl-license"]
		gt.Bool(t, kept).False()
	})

	t.Run("completed assessment cannot be remapped", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")

		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunGapAnalysis(ctx, created.ID)
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrAssessmentCompleted)).True()
	})
}

func TestGetChecklist(t *testing.T) {
	t.Run("before mapping is rejected", func(t *testing.T) {
		_, uc := setupTest(t)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.GetChecklist(ctx, created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidStatus)).True()
	})

	t.Run("lists scope with answers and progress", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")

		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.SubmitAnswer(ctx, created.ID, "obl-training", types.ComplianceYes, "")
		gt.NoError(t, err).Required()

		checklist, err := uc.Assessment.GetChecklist(ctx, created.ID)
		gt.NoError(t, err).Required()

		gt.Array(t, checklist.Items).Length(3)
		gt.Number(t, checklist.Answered).Equal(1)
		gt.Number(t, checklist.Progress.Compliant).Equal(1)

		answered := 0
		for _, item := range checklist.Items {
			gt.Value(t, item.Obligation).NotNil()
			if item.Record != nil {
				answered++
				gt.Value(t, item.Obligation.ID).Equal(types.ObligationID("obl-training"))
			}
		}
		gt.Number(t, answered).Equal(1)
	})
}

func TestSubmitAnswer(t *testing.T) {
	setupMapped := func(t *testing.T) (*usecase.UseCases, types.AssessmentID, context.Context) {
		t.Helper()
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()
		return uc, created.ID, ctx
	}

	t.Run("records and revises an answer", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		updated, err := uc.Assessment.SubmitAnswer(ctx, id, "obl-safety-officer", types.CompliancePartial, "รอการอบรม")
		gt.NoError(t, err).Required()
		rec := updated.ComplianceRecords["obl-safety-officer"]
		gt.Value(t, rec).NotNil()
		gt.Value(t, rec.Status).Equal(types.CompliancePartial)
		gt.Value(t, rec.Note).Equal("รอการอบรม")
		gt.Bool(t, rec.AnsweredAt.IsZero()).False()

		updated, err = uc.Assessment.SubmitAnswer(ctx, id, "obl-safety-officer", types.ComplianceYes, "")
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ComplianceRecords["obl-safety-officer"].Status).Equal(types.ComplianceYes)
		gt.Number(t, len(updated.ComplianceRecords)).Equal(1)
	})

	t.Run("parallel answers to different obligations both persist", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		var eg errgroup.Group
		eg.Go(func() error {
			_, err := uc.Assessment.SubmitAnswer(ctx, id, "obl-safety-officer", types.ComplianceYes, "")
			return err
		})
		eg.Go(func() error {
			_, err := uc.Assessment.SubmitAnswer(ctx, id, "obl-training", types.ComplianceNo, "")
			return err
		})
		gt.NoError(t, eg.Wait()).Required()

		got, err := uc.Assessment.GetAssessment(ctx, id)
		gt.NoError(t, err).Required()
		gt.Number(t, len(got.ComplianceRecords)).Equal(2)
		gt.Value(t, got.ComplianceRecords["obl-safety-officer"].Status).Equal(types.ComplianceYes)
		gt.Value(t, got.ComplianceRecords["obl-training"].Status).Equal(types.ComplianceNo)
	})

	t.Run("rejects unknown compliance status", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		_, err := uc.Assessment.SubmitAnswer(ctx, id, "obl-training", "maybe", "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidAnswer)).True()
	})

	t.Run("rejects obligation outside the scope", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		_, err := uc.Assessment.SubmitAnswer(ctx, id, "obl-unrelated", types.ComplianceYes, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrObligationNotFound)).True()
	})

	t.Run("rejects answers before mapping", func(t *testing.T) {
		_, uc := setupTest(t)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.SubmitAnswer(ctx, created.ID, "obl-training", types.ComplianceYes, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidStatus)).True()
	})

	t.Run("rejects answers after completion", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)
		_, err := uc.Assessment.RunGapAnalysis(ctx, id)
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.SubmitAnswer(ctx, id, "obl-training", types.ComplianceYes, "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrAssessmentCompleted)).True()
	})
}

func TestRunGapAnalysis(t *testing.T) {
	setupMapped := func(t *testing.T) (*usecase.UseCases, types.AssessmentID, context.Context) {
		t.Helper()
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()
		return uc, created.ID, ctx
	}

	t.Run("unanswered obligations score as non-compliant", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		// Answer one of three; the other two default to "no"
		_, err := uc.Assessment.SubmitAnswer(ctx, id, "obl-training", types.ComplianceYes, "")
		gt.NoError(t, err).Required()

		completed, err := uc.Assessment.RunGapAnalysis(ctx, id)
		gt.NoError(t, err).Required()

		gt.Value(t, completed.Status).Equal(types.StatusCompleted)
		summary := completed.GapSummary
		gt.Value(t, summary).NotNil()

		gt.Array(t, summary.Items).Length(3)
		gt.Number(t, summary.GreenCount).Equal(1)
		gt.Number(t, summary.RedCount).Equal(2)
		// 1 green of 3 -> round(33.33) = 33
		gt.Number(t, summary.OverallScore).Equal(33)

		byID := make(map[types.ObligationID]model.GapItem)
		for _, item := range summary.Items {
			byID[item.ObligationID] = item
		}
		// weight 3, unanswered -> red, round(3*1*33.33) = 100
		gt.Value(t, byID["obl-safety-officer"].GapLevel).Equal(types.GapRed)
		gt.Number(t, byID["obl-safety-officer"].RiskScore).Equal(100)
		gt.Value(t, byID["obl-training"].GapLevel).Equal(types.GapGreen)
		gt.Number(t, byID["obl-training"].RiskScore).Equal(0)
	})

	t.Run("items carry topic and recommendation", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		completed, err := uc.Assessment.RunGapAnalysis(ctx, id)
		gt.NoError(t, err).Required()

		for _, item := range completed.GapSummary.Items {
			gt.String(t, item.Topic).NotEqual("")
			gt.String(t, item.Recommendation).NotEqual("")
		}
	})

	t.Run("without LLM the narrative is the static fallback", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		completed, err := uc.Assessment.RunGapAnalysis(ctx, id)
		gt.NoError(t, err).Required()
		gt.Value(t, completed.GapSummary.Narrative).Equal(narrative.FallbackText)
	})

	t.Run("recompute on completed assessment is deterministic", func(t *testing.T) {
		uc, id, ctx := setupMapped(t)

		_, err := uc.Assessment.SubmitAnswer(ctx, id, "obl-safety-officer", types.CompliancePartial, "")
		gt.NoError(t, err).Required()

		first, err := uc.Assessment.RunGapAnalysis(ctx, id)
		gt.NoError(t, err).Required()
		second, err := uc.Assessment.RunGapAnalysis(ctx, id)
		gt.NoError(t, err).Required()

		gt.Number(t, first.GapSummary.OverallScore).Equal(second.GapSummary.OverallScore)
		gt.Number(t, first.GapSummary.RedCount).Equal(second.GapSummary.RedCount)
		gt.Array(t, second.GapSummary.Items).Length(len(first.GapSummary.Items))
		gt.Value(t, second.Status).Equal(types.StatusCompleted)
	})

	t.Run("before mapping is rejected", func(t *testing.T) {
		_, uc := setupTest(t)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.RunGapAnalysis(ctx, created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrInvalidStatus)).True()
	})
}

func TestGetSummary(t *testing.T) {
	t.Run("before gap analysis is not found", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()

		_, err = uc.Assessment.GetSummary(ctx, created.ID)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrSummaryNotComputed)).True()
	})

	t.Run("after gap analysis returns the summary", func(t *testing.T) {
		repo, uc := setupTest(t)
		seedKnowledgeBase(t, repo)
		ctx := userContext("user-1")
		created, err := uc.Assessment.CreateAssessment(ctx, "company-1", factoryProfile())
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunLegalMapping(ctx, created.ID)
		gt.NoError(t, err).Required()
		_, err = uc.Assessment.RunGapAnalysis(ctx, created.ID)
		gt.NoError(t, err).Required()

		summary, err := uc.Assessment.GetSummary(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, summary.Items).Length(3)
		gt.Bool(t, summary.ComputedAt.IsZero()).False()
	})
}

func TestListAssessments(t *testing.T) {
	_, uc := setupTest(t)

	_, err := uc.Assessment.CreateAssessment(userContext("user-1"), "company-1", factoryProfile())
	gt.NoError(t, err).Required()
	_, err = uc.Assessment.CreateAssessment(userContext("user-2"), "company-1", factoryProfile())
	gt.NoError(t, err).Required()

	listed, err := uc.Assessment.ListAssessments(userContext("user-1"), "company-1")
	gt.NoError(t, err).Required()
	gt.Array(t, listed).Length(1)
	gt.Value(t, listed[0].OwnerUID).Equal("user-1")
}
