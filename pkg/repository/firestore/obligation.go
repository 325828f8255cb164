package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

type conditionClauseDoc struct {
	Kind         string `firestore:"kind"`
	MinEmployees int    `firestore:"min_employees"`
	MachineLevel string `firestore:"machine_level"`
}

type obligationDoc struct {
	ID                    string               `firestore:"obligation_id"`
	LawID                 string               `firestore:"law_id"`
	Category              string               `firestore:"category"`
	RiskWeight            int                  `firestore:"risk_weight"`
	Conditions            []conditionClauseDoc `firestore:"conditions"`
	RequiredEvidence      []string             `firestore:"required_evidence"`
	Description           string               `firestore:"description"`
	SimplifiedDescription string               `firestore:"simplified_description"`
	ChecklistQuestion     string               `firestore:"checklist_question"`
	GuidanceText          string               `firestore:"guidance_text"`
	CreatedAt             time.Time            `firestore:"created_at"`
}

func toObligationDoc(o *model.Obligation) *obligationDoc {
	doc := &obligationDoc{
		ID:                    string(o.ID),
		LawID:                 string(o.LawID),
		Category:              string(o.Category),
		RiskWeight:            int(o.RiskWeight),
		RequiredEvidence:      o.RequiredEvidence,
		Description:           o.Description,
		SimplifiedDescription: o.SimplifiedDescription,
		ChecklistQuestion:     o.ChecklistQuestion,
		GuidanceText:          o.GuidanceText,
		CreatedAt:             o.CreatedAt,
	}
	for _, c := range o.Conditions {
		doc.Conditions = append(doc.Conditions, conditionClauseDoc{
			Kind:         string(c.Kind),
			MinEmployees: c.MinEmployees,
			MachineLevel: string(c.MachineLevel),
		})
	}
	return doc
}

func fromObligationDoc(d *obligationDoc) *model.Obligation {
	o := &model.Obligation{
		ID:                    types.ObligationID(d.ID),
		LawID:                 types.LawID(d.LawID),
		Category:              types.Category(d.Category),
		RiskWeight:            types.RiskWeight(d.RiskWeight),
		RequiredEvidence:      d.RequiredEvidence,
		Description:           d.Description,
		SimplifiedDescription: d.SimplifiedDescription,
		ChecklistQuestion:     d.ChecklistQuestion,
		GuidanceText:          d.GuidanceText,
		CreatedAt:             d.CreatedAt,
	}
	for _, c := range d.Conditions {
		o.Conditions = append(o.Conditions, model.ConditionClause{
			Kind:         types.ClauseKind(c.Kind),
			MinEmployees: c.MinEmployees,
			MachineLevel: types.MachineLevel(c.MachineLevel),
		})
	}
	return o
}

type obligationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newObligationRepository(client *firestore.Client) *obligationRepository {
	return &obligationRepository{client: client}
}

func (r *obligationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_obligations"
	}
	return "obligations"
}

func (r *obligationRepository) Create(ctx context.Context, obligation *model.Obligation) (*model.Obligation, error) {
	if err := obligation.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid obligation")
	}

	created := *obligation
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	docRef := r.client.Collection(r.collection()).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toObligationDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create obligation", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *obligationRepository) Get(ctx context.Context, id types.ObligationID) (*model.Obligation, error) {
	doc, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "obligation not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get obligation", goerr.V("id", id))
	}

	var oDoc obligationDoc
	if err := doc.DataTo(&oDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal obligation", goerr.V("id", id))
	}

	return fromObligationDoc(&oDoc), nil
}

func (r *obligationRepository) List(ctx context.Context) ([]*model.Obligation, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var obligations []*model.Obligation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate obligations")
		}

		var oDoc obligationDoc
		if err := doc.DataTo(&oDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal obligation")
		}
		obligations = append(obligations, fromObligationDoc(&oDoc))
	}

	return obligations, nil
}

func (r *obligationRepository) FindByLawID(ctx context.Context, lawID types.LawID) ([]*model.Obligation, error) {
	iter := r.client.Collection(r.collection()).
		Where("law_id", "==", string(lawID)).
		Documents(ctx)
	defer iter.Stop()

	var obligations []*model.Obligation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to query obligations by law", goerr.V("law_id", lawID))
		}

		var oDoc obligationDoc
		if err := doc.DataTo(&oDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal obligation")
		}
		obligations = append(obligations, fromObligationDoc(&oDoc))
	}

	return obligations, nil
}

func (r *obligationRepository) FindByIDs(ctx context.Context, ids []types.ObligationID) ([]*model.Obligation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > interfaces.TagBatchLimit {
		return nil, goerr.New("id batch exceeds backend limit",
			goerr.V("count", len(ids)),
			goerr.V("limit", interfaces.TagBatchLimit),
		)
	}

	idStrings := make([]string, len(ids))
	for i, id := range ids {
		idStrings[i] = string(id)
	}

	iter := r.client.Collection(r.collection()).
		Where("obligation_id", "in", idStrings).
		Documents(ctx)
	defer iter.Stop()

	var obligations []*model.Obligation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to query obligations by ids")
		}

		var oDoc obligationDoc
		if err := doc.DataTo(&oDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal obligation")
		}
		obligations = append(obligations, fromObligationDoc(&oDoc))
	}

	return obligations, nil
}
