package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
	"github.com/sheqworks/themis/pkg/repository/memory"
)

func runLawRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create then Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		law := &model.Law{
			ID:             "law-factory",
			Name:           "พ.ร.บ. โรงงาน พ.ศ. 2535",
			Category:       types.CategorySafety,
			Ministry:       "กระทรวงอุตสาหกรรม",
			ApplicableTags: []types.Tag{"factory", "factory_act"},
		}
		created, err := repo.Law().Create(ctx, law)
		gt.NoError(t, err).Required()
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		got, err := repo.Law().Get(ctx, "law-factory")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Name).Equal(law.Name)
		gt.Array(t, got.ApplicableTags).Equal(law.ApplicableTags)
	})

	t.Run("Create is an upsert that keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Law().Create(ctx, &model.Law{
			ID:             "law-1",
			Name:           "old name",
			Category:       types.CategorySafety,
			ApplicableTags: []types.Tag{"factory"},
		})
		gt.NoError(t, err).Required()

		second, err := repo.Law().Create(ctx, &model.Law{
			ID:             "law-1",
			Name:           "new name",
			Category:       types.CategorySafety,
			ApplicableTags: []types.Tag{"factory", "chemical"},
		})
		gt.NoError(t, err).Required()

		gt.Value(t, second.Name).Equal("new name")
		gt.Value(t, second.CreatedAt.Unix()).Equal(first.CreatedAt.Unix())

		listed, err := repo.Law().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, listed).Length(1)
	})

	t.Run("Get unknown law returns not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Law().Get(context.Background(), "no-such-law")
		gt.Error(t, err)
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("FindByAnyTag matches any declared tag", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, law := range []*model.Law{
			{ID: "law-1", Name: "a", Category: types.CategorySafety, ApplicableTags: []types.Tag{"factory"}},
			{ID: "law-2", Name: "b", Category: types.CategoryEnvironment, ApplicableTags: []types.Tag{"wastewater", "factory"}},
			{ID: "law-3", Name: "c", Category: types.CategorySafety, ApplicableTags: []types.Tag{"construction"}},
		} {
			_, err := repo.Law().Create(ctx, law)
			gt.NoError(t, err).Required()
		}

		found, err := repo.Law().FindByAnyTag(ctx, []types.Tag{"factory", "boiler"})
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(2)
	})

	t.Run("FindByAnyTag rejects oversized batches", func(t *testing.T) {
		repo := newRepo(t)

		tags := make([]types.Tag, interfaces.TagBatchLimit+1)
		for i := range tags {
			tags[i] = types.Tag(string(rune('a' + i)))
		}
		_, err := repo.Law().FindByAnyTag(context.Background(), tags)
		gt.Error(t, err)
	})
}

func runObligationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	seed := func(t *testing.T, repo interfaces.Repository) {
		t.Helper()
		ctx := context.Background()
		for _, obl := range []*model.Obligation{
			{
				ID:                "obl-1",
				LawID:             "law-1",
				Category:          types.CategorySafety,
				RiskWeight:        types.RiskWeightHigh,
				ChecklistQuestion: "มีเจ้าหน้าที่ความปลอดภัยหรือไม่",
				RequiredEvidence:  []string{"คำสั่งแต่งตั้ง จป."},
				Conditions: []model.ConditionClause{
					{Kind: types.ClauseEmployeeMin, MinEmployees: 100},
				},
			},
			{
				ID:                "obl-2",
				LawID:             "law-1",
				Category:          types.CategorySafety,
				RiskWeight:        types.RiskWeightLow,
				ChecklistQuestion: "มีการอบรมพนักงานใหม่หรือไม่",
			},
			{
				ID:                "obl-3",
				LawID:             "law-2",
				Category:          types.CategoryEnvironment,
				RiskWeight:        types.RiskWeightMedium,
				ChecklistQuestion: "มีระบบบำบัดน้ำเสียหรือไม่",
			},
		} {
			_, err := repo.Obligation().Create(ctx, obl)
			gt.NoError(t, err).Required()
		}
	}

	t.Run("Get round-trips conditions and evidence", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		got, err := repo.Obligation().Get(context.Background(), "obl-1")
		gt.NoError(t, err).Required()

		gt.Value(t, got.RiskWeight).Equal(types.RiskWeightHigh)
		gt.Array(t, got.Conditions).Length(1)
		gt.Value(t, got.Conditions[0].Kind).Equal(types.ClauseEmployeeMin)
		gt.Number(t, got.Conditions[0].MinEmployees).Equal(100)
		gt.Array(t, got.RequiredEvidence).Equal([]string{"คำสั่งแต่งตั้ง จป."})
	})

	t.Run("FindByLawID returns only that law's obligations", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		found, err := repo.Obligation().FindByLawID(context.Background(), "law-1")
		gt.NoError(t, err).Required()

		gt.Array(t, found).Length(2)
		for _, obl := range found {
			gt.Value(t, obl.LawID).Equal(types.LawID("law-1"))
		}
	})

	t.Run("FindByIDs skips unknown IDs", func(t *testing.T) {
		repo := newRepo(t)
		seed(t, repo)

		found, err := repo.Obligation().FindByIDs(context.Background(), []types.ObligationID{"obl-3", "obl-1", "obl-missing"})
		gt.NoError(t, err).Required()
		gt.Array(t, found).Length(2)
	})

	t.Run("FindByIDs rejects oversized batches", func(t *testing.T) {
		repo := newRepo(t)

		ids := make([]types.ObligationID, interfaces.TagBatchLimit+1)
		for i := range ids {
			ids[i] = types.ObligationID(string(rune('a' + i)))
		}
		_, err := repo.Obligation().FindByIDs(context.Background(), ids)
		gt.Error(t, err)
	})

	t.Run("Get unknown obligation returns not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Obligation().Get(context.Background(), "no-such-obligation")
		gt.Error(t, err)
		gt.Bool(t, isNotFound(err)).True()
	})
}

func TestMemoryLawRepository(t *testing.T) {
	runLawRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreLawRepository(t *testing.T) {
	runLawRepositoryTest(t, newFirestoreRepositoryForTest)
}

func TestMemoryObligationRepository(t *testing.T) {
	runObligationRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreObligationRepository(t *testing.T) {
	runObligationRepositoryTest(t, newFirestoreRepositoryForTest)
}
