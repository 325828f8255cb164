package applicability

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sheqworks/themis/pkg/domain/interfaces"
	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
	"github.com/sheqworks/themis/pkg/utils/logging"
)

// Result is the resolved applicability scope of one assessment. The
// obligation list order is the resolution order and is preserved all the way
// into the final gap report.
type Result struct {
	Laws        []types.LawID
	Obligations []types.ObligationID
}

func chunk[T any](list []T, size int) [][]T {
	var batches [][]T
	for size < len(list) {
		list, batches = list[size:], append(batches, list[:size])
	}
	if len(list) > 0 {
		batches = append(batches, list)
	}
	return batches
}

// Resolve filters the legal knowledge base down to the laws and obligations
// that apply to the given tags and profile.
//
// Law selection is an any-of-N tag match. Tag batches are capped at the
// backend's IN-clause limit and issued concurrently; results are merged in
// batch order and deduplicated by law ID, so the output is deterministic for
// a given tag list. An empty tag set resolves to an empty scope, not an
// error. Lookup failures propagate: the mapping stage must not proceed on a
// partial candidate pool.
func Resolve(ctx context.Context, tags []types.Tag, profile *model.Profile, laws interfaces.LawRepository, obligations interfaces.ObligationRepository) (*Result, error) {
	result := &Result{}
	if len(tags) == 0 {
		return result, nil
	}

	batches := chunk(types.UniqueTags(tags), interfaces.TagBatchLimit)
	lawsByBatch := make([][]*model.Law, len(batches))

	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		g.Go(func() error {
			found, err := laws.FindByAnyTag(gctx, batch)
			if err != nil {
				return goerr.Wrap(err, "failed to find laws by tags", goerr.V("tags", batch))
			}
			lawsByBatch[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in batch order, suppressing duplicates across batches
	seen := make(map[types.LawID]struct{})
	var selected []*model.Law
	for _, batch := range lawsByBatch {
		for _, law := range batch {
			if _, ok := seen[law.ID]; ok {
				continue
			}
			seen[law.ID] = struct{}{}
			selected = append(selected, law)
			result.Laws = append(result.Laws, law.ID)
		}
	}

	obligationsByLaw := make([][]*model.Obligation, len(selected))
	g, gctx = errgroup.WithContext(ctx)
	for i, law := range selected {
		g.Go(func() error {
			found, err := obligations.FindByLawID(gctx, law.ID)
			if err != nil {
				return goerr.Wrap(err, "failed to find obligations for law", goerr.V("law_id", law.ID))
			}
			obligationsByLaw[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seenObl := make(map[types.ObligationID]struct{})
	for _, batch := range obligationsByLaw {
		for _, obl := range batch {
			if !IsApplicable(ctx, obl, profile) {
				continue
			}
			if _, ok := seenObl[obl.ID]; ok {
				continue
			}
			seenObl[obl.ID] = struct{}{}
			result.Obligations = append(result.Obligations, obl.ID)
		}
	}

	return result, nil
}

// IsApplicable evaluates the obligation's condition clauses against the
// profile. An obligation without conditions always applies; otherwise every
// clause must hold. A clause of unknown kind is non-restrictive: it is
// logged and skipped rather than hiding the obligation, so new rule types
// fail open.
func IsApplicable(ctx context.Context, obligation *model.Obligation, profile *model.Profile) bool {
	if len(obligation.Conditions) == 0 {
		return true
	}
	if profile == nil {
		return false
	}

	for _, clause := range obligation.Conditions {
		switch clause.Kind {
		case types.ClauseEmployeeMin:
			if profile.EmployeeThreshold.Midpoint() < clause.MinEmployees {
				return false
			}
		case types.ClauseHasContractor:
			if !profile.HasContractor {
				return false
			}
		case types.ClauseMachineLevel:
			if profile.MachineLevel != clause.MachineLevel {
				return false
			}
		default:
			logging.From(ctx).Warn("unrecognized applicability clause, treating as non-restrictive",
				"kind", clause.Kind,
				"obligation_id", obligation.ID,
			)
		}
	}

	return true
}
