package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested document does not exist
var ErrNotFound = goerr.New("not found")

type Firestore struct {
	client     *firestore.Client
	assessment *assessmentRepository
	law        *lawRepository
	obligation *obligationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.assessment.collectionPrefix = prefix
		f.law.collectionPrefix = prefix
		f.obligation.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID),
		)
	}

	f := &Firestore{
		client:     client,
		assessment: newAssessmentRepository(client),
		law:        newLawRepository(client),
		obligation: newObligationRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Assessment() interfaces.AssessmentRepository {
	return f.assessment
}

func (f *Firestore) Law() interfaces.LawRepository {
	return f.law
}

func (f *Firestore) Obligation() interfaces.ObligationRepository {
	return f.obligation
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
