package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"realtorai/internal/model"
	"realtorai/internal/repository"
)

// Budget bounds are expressed in ten-thousand-yuan units by callers and
// converted to yuan at filter time. Missing bounds widen to sentinels.
const (
	yuanPerUnit  = 10000
	priceFloor   = 0
	priceCeiling = 99999999
)

// CommunityStore is the slice of the repository the community
// recommender needs
type CommunityStore interface {
	TopCommunities(ctx context.Context, where repository.Predicate, weights model.WeightVector, limit int) ([]model.CommunityRecommendation, error)
}

// CommunityRecommender ranks communities against a structured
// requirement. Retrieval is fully deterministic; presentation-time
// jitter is applied afterwards from an injectable source so tests can
// pin it down.
type CommunityRecommender struct {
	store CommunityStore

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCommunityRecommender wires a recommender around a store and a
// jitter source
func NewCommunityRecommender(store CommunityStore, rng *rand.Rand) *CommunityRecommender {
	return &CommunityRecommender{store: store, rng: rng}
}

// Recommend returns the top communities for the requirement, highest
// weighted score first. randomFactor > 0 adds uniform jitter in
// [0, randomFactor) to each final score and re-sorts; 0 disables jitter
// entirely.
func (r *CommunityRecommender) Recommend(
	ctx context.Context,
	req *model.StructuredRequirement,
	weights model.WeightVector,
	limit int,
	randomFactor float64,
) ([]model.CommunityRecommendation, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: parsed requirement is required", ErrValidation)
	}
	if weights == nil {
		weights = model.DefaultWeights()
	} else {
		weights = weights.FillDefaults()
	}

	where := repository.And(locationPredicate(req), communityPricePredicate(req))

	rows, err := r.store.TopCommunities(ctx, where, weights, limit)
	if err != nil {
		return nil, err
	}

	if randomFactor > 0 {
		r.jitter(rows, randomFactor)
	}
	return rows, nil
}

func (r *CommunityRecommender) jitter(rows []model.CommunityRecommendation, factor float64) {
	r.mu.Lock()
	for i := range rows {
		rows[i].FinalScore += r.rng.Float64() * factor
	}
	r.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalScore > rows[j].FinalScore
	})
}

// locationPredicate matches rows in any mentioned district OR circle.
// No resolved codes means no location constraint.
func locationPredicate(req *model.StructuredRequirement) repository.Predicate {
	var clauses []repository.Predicate
	if len(req.DistrictCodes) > 0 {
		clauses = append(clauses, repository.In(repository.FieldDistrictCode, req.DistrictCodes))
	}
	if len(req.CircleCodes) > 0 {
		clauses = append(clauses, repository.In(repository.FieldCircleCode, req.CircleCodes))
	}
	return repository.Or(clauses...)
}

// communityPricePredicate builds the price clause. With a bedroom count
// the filter applies to the matching room type's average price; without
// one it checks overlap with the community's listing price range.
func communityPricePredicate(req *model.StructuredRequirement) repository.Predicate {
	lo, hi, constrained := budgetBounds(req.Budget)
	if req.BedroomCount != nil {
		bedrooms := repository.Eq(repository.FieldRoomBedrooms, *req.BedroomCount)
		if !constrained {
			return bedrooms
		}
		return repository.And(bedrooms, repository.Range(repository.FieldRoomAvgPrice, lo, hi))
	}
	if !constrained {
		return repository.True()
	}
	return repository.Overlaps(repository.FieldPriceMin, repository.FieldPriceMax, lo, hi)
}

// budgetBounds converts a budget to yuan bounds. A degenerate range with
// equal bounds is re-expanded so a point budget still matches a band.
func budgetBounds(budget *model.BudgetRange) (lo, hi float64, constrained bool) {
	if budget.IsZero() {
		return 0, 0, false
	}

	min, max := priceFloor, priceCeiling
	if budget.Min != nil {
		min = *budget.Min * yuanPerUnit
	}
	if budget.Max != nil {
		max = *budget.Max * yuanPerUnit
	}
	if budget.Min != nil && budget.Max != nil && *budget.Min == *budget.Max {
		lo, hi := ExpandBudget(*budget.Min)
		min, max = lo*yuanPerUnit, hi*yuanPerUnit
	}
	return float64(min), float64(max), true
}
