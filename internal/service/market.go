package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"realtorai/internal/model"
)

// MarketStore is the slice of the repository the market service needs
type MarketStore interface {
	LatestMarketOverview(ctx context.Context) (*model.MarketOverview, error)
	LatestPropertyPolicy(ctx context.Context) (*model.PropertyPolicy, error)
}

// MarketService serves market-level information: the latest stored
// overview and policy snapshots, file-backed statistics, and an
// oracle-sourced trend report
type MarketService struct {
	store     MarketStore
	oracle    *OracleClient
	statsPath string
}

// NewMarketService wires a market service; oracle may be nil
func NewMarketService(store MarketStore, oracle *OracleClient, statsPath string) *MarketService {
	return &MarketService{store: store, oracle: oracle, statsPath: statsPath}
}

// Overview returns the most recent market overview snapshot
func (s *MarketService) Overview(ctx context.Context) (*model.MarketOverview, error) {
	row, err := s.store.LatestMarketOverview(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no market overview available", ErrNotFound)
		}
		return nil, err
	}
	return row, nil
}

// Policy returns the most recent property policy snapshot
func (s *MarketService) Policy(ctx context.Context) (*model.PropertyPolicy, error) {
	row, err := s.store.LatestPropertyPolicy(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no property policy available", ErrNotFound)
		}
		return nil, err
	}
	return row, nil
}

// Stats loads the market statistics snapshot from the configured JSON
// file. A file holding a list yields its first element.
func (s *MarketService) Stats(ctx context.Context) (map[string]interface{}, error) {
	raw, err := os.ReadFile(s.statsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: market stats file missing", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read market stats: %w", err)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj, nil
	}

	var list []map[string]interface{}
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0], nil
	}
	return nil, fmt.Errorf("market stats file is not a JSON object or list: %s", s.statsPath)
}

const marketTrendPrompt = `请联网检索并总结当前上海二手房市场的最新走势，返回JSON对象，字段：
- summary: 总体走势概述（字符串）
- price_trend: 价格走势（字符串）
- volume_trend: 成交量走势（字符串）
- hot_areas: 热门区域列表（字符串数组）
- outlook: 后市展望（字符串）

只返回JSON对象。`

// Trend asks the oracle for a live market trend report. There is no
// stored fallback for this; an unavailable oracle surfaces as an error.
func (s *MarketService) Trend(ctx context.Context) (map[string]interface{}, error) {
	if s.oracle == nil || !s.oracle.Enabled() {
		return nil, fmt.Errorf("%w: trend reporting requires the oracle", ErrOracleUnavailable)
	}
	return s.oracle.Complete(ctx, marketTrendPrompt, true)
}
