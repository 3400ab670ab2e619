package service

import (
	"context"
	"fmt"
	"strings"

	"realtorai/internal/model"
)

// ScoreStore is the slice of the repository the score lookup services need
type ScoreStore interface {
	CommunityScores(ctx context.Context, communityIDs []string) ([]model.CommunityScore, error)
	CircleScores(ctx context.Context, circleCodes []string) ([]model.CircleScore, error)
	SuggestCommunities(ctx context.Context, q string, limit int) ([]model.CommunitySuggestion, error)
}

// ScoreService answers score-card lookups and autocomplete
type ScoreService struct {
	store ScoreStore
}

// NewScoreService wires a score service
func NewScoreService(store ScoreStore) *ScoreService {
	return &ScoreService{store: store}
}

// CommunityScores looks up score cards by community id, preserving input
// order. An empty id list is a validation error.
func (s *ScoreService) CommunityScores(ctx context.Context, ids []string) ([]model.CommunityScore, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: community_ids is empty", ErrValidation)
	}
	return s.store.CommunityScores(ctx, ids)
}

// CircleScores looks up score cards by circle code, preserving input order
func (s *ScoreService) CircleScores(ctx context.Context, codes []string) ([]model.CircleScore, error) {
	codes = cleanIDs(codes)
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: circle_codes is empty", ErrValidation)
	}
	return s.store.CircleScores(ctx, codes)
}

// Suggest returns autocomplete candidates for a community name prefix.
// A blank query is a validation error.
func (s *ScoreService) Suggest(ctx context.Context, q string, limit int) ([]model.CommunitySuggestion, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrValidation)
	}
	return s.store.SuggestCommunities(ctx, q, limit)
}

func cleanIDs(ids []string) []string {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	return cleaned
}
