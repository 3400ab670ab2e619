package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"realtorai/internal/model"
)

type fakeMarketStore struct {
	overview *model.MarketOverview
	policy   *model.PropertyPolicy
}

func (s *fakeMarketStore) LatestMarketOverview(context.Context) (*model.MarketOverview, error) {
	if s.overview == nil {
		return nil, fmt.Errorf("failed to fetch market overview: %w", sql.ErrNoRows)
	}
	return s.overview, nil
}

func (s *fakeMarketStore) LatestPropertyPolicy(context.Context) (*model.PropertyPolicy, error) {
	if s.policy == nil {
		return nil, fmt.Errorf("failed to fetch property policy: %w", sql.ErrNoRows)
	}
	return s.policy, nil
}

func TestOverviewMapsMissingRowToNotFound(t *testing.T) {
	svc := NewMarketService(&fakeMarketStore{}, nil, "")

	if _, err := svc.Overview(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Policy(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("policy error = %v, want ErrNotFound", err)
	}
}

func TestOverviewReturnsLatestRow(t *testing.T) {
	row := &model.MarketOverview{ID: 7, SnapshotDate: time.Now(), DataSource: "crawler"}
	svc := NewMarketService(&fakeMarketStore{overview: row}, nil, "")

	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if got.ID != 7 {
		t.Errorf("id = %d, want 7", got.ID)
	}
}

func TestStatsReadsObjectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte(`{"month": "2026-08", "avg_price": 65000}`), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := NewMarketService(&fakeMarketStore{}, nil, path)

	data, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if data["month"] != "2026-08" {
		t.Errorf("month = %v", data["month"])
	}
}

func TestStatsTakesFirstElementOfListFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	if err := os.WriteFile(path, []byte(`[{"month": "2026-08"}, {"month": "2026-07"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := NewMarketService(&fakeMarketStore{}, nil, path)

	data, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if data["month"] != "2026-08" {
		t.Errorf("month = %v", data["month"])
	}
}

func TestStatsMissingFileIsNotFound(t *testing.T) {
	svc := NewMarketService(&fakeMarketStore{}, nil, filepath.Join(t.TempDir(), "absent.json"))

	if _, err := svc.Stats(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestTrendWithoutOracleIsUnavailable(t *testing.T) {
	svc := NewMarketService(&fakeMarketStore{}, nil, "")

	if _, err := svc.Trend(context.Background()); !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("error = %v, want ErrOracleUnavailable", err)
	}
}
