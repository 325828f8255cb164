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

type lawDoc struct {
	ID             string    `firestore:"law_id"`
	Name           string    `firestore:"law_name"`
	Category       string    `firestore:"category"`
	Ministry       string    `firestore:"ministry"`
	EffectiveDate  string    `firestore:"effective_date"`
	SourceURL      string    `firestore:"source_url"`
	Summary        string    `firestore:"summary"`
	ApplicableTags []string  `firestore:"applicable_tags"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func toLawDoc(law *model.Law) *lawDoc {
	doc := &lawDoc{
		ID:            string(law.ID),
		Name:          law.Name,
		Category:      string(law.Category),
		Ministry:      law.Ministry,
		EffectiveDate: law.EffectiveDate,
		SourceURL:     law.SourceURL,
		Summary:       law.Summary,
		CreatedAt:     law.CreatedAt,
		UpdatedAt:     law.UpdatedAt,
	}
	for _, t := range law.ApplicableTags {
		doc.ApplicableTags = append(doc.ApplicableTags, string(t))
	}
	return doc
}

func fromLawDoc(d *lawDoc) *model.Law {
	law := &model.Law{
		ID:            types.LawID(d.ID),
		Name:          d.Name,
		Category:      types.Category(d.Category),
		Ministry:      d.Ministry,
		EffectiveDate: d.EffectiveDate,
		SourceURL:     d.SourceURL,
		Summary:       d.Summary,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for _, t := range d.ApplicableTags {
		law.ApplicableTags = append(law.ApplicableTags, types.Tag(t))
	}
	return law
}

type lawRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLawRepository(client *firestore.Client) *lawRepository {
	return &lawRepository{client: client}
}

func (r *lawRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_laws"
	}
	return "laws"
}

func (r *lawRepository) Create(ctx context.Context, law *model.Law) (*model.Law, error) {
	if err := law.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid law")
	}

	now := time.Now().UTC()
	created := *law
	if created.CreatedAt.IsZero() {
		created.CreatedAt = now
	}
	created.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, toLawDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create law", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *lawRepository) Get(ctx context.Context, id types.LawID) (*model.Law, error) {
	doc, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "law not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get law", goerr.V("id", id))
	}

	var lDoc lawDoc
	if err := doc.DataTo(&lDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal law", goerr.V("id", id))
	}

	return fromLawDoc(&lDoc), nil
}

func (r *lawRepository) List(ctx context.Context) ([]*model.Law, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var laws []*model.Law
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate laws")
		}

		var lDoc lawDoc
		if err := doc.DataTo(&lDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal law")
		}
		laws = append(laws, fromLawDoc(&lDoc))
	}

	return laws, nil
}

func (r *lawRepository) FindByAnyTag(ctx context.Context, tags []types.Tag) ([]*model.Law, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	if len(tags) > interfaces.TagBatchLimit {
		return nil, goerr.New("tag batch exceeds backend limit",
			goerr.V("count", len(tags)),
			goerr.V("limit", interfaces.TagBatchLimit),
		)
	}

	tagStrings := make([]string, len(tags))
	for i, t := range tags {
		tagStrings[i] = string(t)
	}

	iter := r.client.Collection(r.collection()).
		Where("applicable_tags", "array-contains-any", tagStrings).
		Documents(ctx)
	defer iter.Stop()

	var laws []*model.Law
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to query laws by tags", goerr.V("tags", tags))
		}

		var lDoc lawDoc
		if err := doc.DataTo(&lDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal law")
		}
		laws = append(laws, fromLawDoc(&lDoc))
	}

	return laws, nil
}
