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

// CircleStore is the slice of the repository the circle recommender needs
type CircleStore interface {
	TopCircles(ctx context.Context, where repository.Predicate, weights model.WeightVector, limit int) ([]model.CircleRecommendation, error)
}

// CircleRecommender ranks circles against a structured requirement,
// sharing the location and jitter semantics of the community recommender
type CircleRecommender struct {
	store CircleStore

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCircleRecommender wires a circle recommender
func NewCircleRecommender(store CircleStore, rng *rand.Rand) *CircleRecommender {
	return &CircleRecommender{store: store, rng: rng}
}

// Recommend returns the top circles for the requirement. Circles carry a
// single average listing price, so the budget filters that value
// directly instead of a price range.
func (r *CircleRecommender) Recommend(
	ctx context.Context,
	req *model.StructuredRequirement,
	weights model.WeightVector,
	limit int,
	randomFactor float64,
) ([]model.CircleRecommendation, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: parsed requirement is required", ErrValidation)
	}
	if weights == nil {
		weights = model.DefaultWeights()
	} else {
		weights = weights.FillDefaults()
	}

	price := repository.Predicate(repository.True())
	if lo, hi, constrained := budgetBounds(req.Budget); constrained {
		price = repository.Range(repository.FieldCircleListPrice, lo, hi)
	}
	where := repository.And(locationPredicate(req), price)

	rows, err := r.store.TopCircles(ctx, where, weights, limit)
	if err != nil {
		return nil, err
	}

	if randomFactor > 0 {
		r.jitter(rows, randomFactor)
	}
	return rows, nil
}

func (r *CircleRecommender) jitter(rows []model.CircleRecommendation, factor float64) {
	r.mu.Lock()
	for i := range rows {
		rows[i].FinalScore += r.rng.Float64() * factor
	}
	r.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalScore > rows[j].FinalScore
	})
}
