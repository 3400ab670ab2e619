package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"realtorai/internal/model"
)

type fakeScoreStore struct {
	communityIDs []string
	circleCodes  []string
	query        string
}

func (s *fakeScoreStore) CommunityScores(_ context.Context, ids []string) ([]model.CommunityScore, error) {
	s.communityIDs = ids
	cards := make([]model.CommunityScore, len(ids))
	for i, id := range ids {
		cards[i] = model.CommunityScore{ID: id}
	}
	return cards, nil
}

func (s *fakeScoreStore) CircleScores(_ context.Context, codes []string) ([]model.CircleScore, error) {
	s.circleCodes = codes
	cards := make([]model.CircleScore, len(codes))
	for i, code := range codes {
		cards[i] = model.CircleScore{CircleCode: code}
	}
	return cards, nil
}

func (s *fakeScoreStore) SuggestCommunities(_ context.Context, q string, limit int) ([]model.CommunitySuggestion, error) {
	s.query = q
	return []model.CommunitySuggestion{}, nil
}

func TestCommunityScoresPreservesOrderAndCleansInput(t *testing.T) {
	store := &fakeScoreStore{}
	svc := NewScoreService(store)

	cards, err := svc.CommunityScores(context.Background(), []string{" c2 ", "c1", "", "c3"})
	if err != nil {
		t.Fatalf("CommunityScores failed: %v", err)
	}

	if !reflect.DeepEqual(store.communityIDs, []string{"c2", "c1", "c3"}) {
		t.Errorf("ids passed to store = %v", store.communityIDs)
	}
	if len(cards) != 3 || cards[0].ID != "c2" {
		t.Errorf("cards = %v", cards)
	}
}

func TestScoreLookupsRejectEmptyInput(t *testing.T) {
	svc := NewScoreService(&fakeScoreStore{})

	if _, err := svc.CommunityScores(context.Background(), nil); !errors.Is(err, ErrValidation) {
		t.Errorf("community error = %v, want ErrValidation", err)
	}
	if _, err := svc.CircleScores(context.Background(), []string{" ", ""}); !errors.Is(err, ErrValidation) {
		t.Errorf("circle error = %v, want ErrValidation", err)
	}
}

func TestSuggestTrimsQueryAndRejectsBlank(t *testing.T) {
	store := &fakeScoreStore{}
	svc := NewScoreService(store)

	if _, err := svc.Suggest(context.Background(), "  ", 10); !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}

	if _, err := svc.Suggest(context.Background(), " 张江 ", 10); err != nil {
		t.Fatalf("Suggest failed: %v", err)
	}
	if store.query != "张江" {
		t.Errorf("query passed to store = %q", store.query)
	}
}
