package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"realtorai/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Logical field names understood by the scored-relation adapters.
// Service code builds predicates against these; each query maps them to
// its own column expressions.
const (
	FieldDistrictCode    = "district_code"
	FieldCircleCode      = "circle_code"
	FieldPriceMin        = "price_min"
	FieldPriceMax        = "price_max"
	FieldRoomBedrooms    = "roomtype_bedrooms"
	FieldRoomAvgPrice    = "roomtype_avg_price"
	FieldCircleListPrice = "avg_list_price"
)

// PostgresRepository handles database operations against the scored relation
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(dsn string, maxConn, maxIdleConn int) (*PostgresRepository, error) {
	// Disable prepared statement caching to avoid "unnamed prepared statement does not exist" errors
	if !strings.Contains(dsn, "?") {
		dsn += "?prefer_simple_protocol=true"
	} else {
		dsn += "&prefer_simple_protocol=true"
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

// Close closes the database connection
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

var communityColumns = ColumnMap{
	FieldDistrictCode: "c.district_code",
	FieldCircleCode:   "c.circle_code",
	FieldPriceMin:     "c.min_listing_price",
	FieldPriceMax:     "c.max_listing_price",
	FieldRoomBedrooms: "rp.bedroom_count",
	FieldRoomAvgPrice: "rp.avg_price",
}

// TopCommunities returns the highest-scoring communities matching the
// predicate, ordered by the weighted final score. The score and the limit
// are both applied inside the query so the full relation is never
// materialized.
func (r *PostgresRepository) TopCommunities(
	ctx context.Context,
	where Predicate,
	weights model.WeightVector,
	limit int,
) ([]model.CommunityRecommendation, error) {
	args := &Args{}

	scoreExpr := fmt.Sprintf(`ROUND((
			c.base_score * %s +
			c.living_score * %s +
			c.traffic_score * %s +
			c.school_score * %s +
			c.hospital_score * %s +
			c.park_score * %s +
			c.restaurant_score * %s
		)::numeric, 2)`,
		args.Add(weights[model.DimBase]),
		args.Add(weights[model.DimLiving]),
		args.Add(weights[model.DimTraffic]),
		args.Add(weights[model.DimSchool]),
		args.Add(weights[model.DimHospital]),
		args.Add(weights[model.DimPark]),
		args.Add(weights[model.DimRestaurant]),
	)

	// Room-type price filtering needs the per-room-type price series
	join := ""
	if References(where, FieldRoomAvgPrice) || References(where, FieldRoomBedrooms) {
		join = "JOIN public.community_roomtype_prices rp ON rp.community_id = c.id"
	}

	whereSQL := where.SQL(args, communityColumns)

	query := fmt.Sprintf(`
		SELECT c.id, c.name, c.district_code, c.district_name, c.circle_code, c.circle_name,
		       c.avg_listing_price,
		       c.base_score, c.living_score, c.traffic_score, c.school_score,
		       c.hospital_score, c.park_score, c.restaurant_score,
		       %s AS final_score
		FROM public.v_community_scores c
		%s
		WHERE %s
		ORDER BY final_score DESC, c.id
		LIMIT %s
	`, scoreExpr, join, whereSQL, args.Add(limit))

	var rows []model.CommunityRecommendation
	if err := r.db.SelectContext(ctx, &rows, query, args.Values()...); err != nil {
		return nil, fmt.Errorf("failed to fetch community rankings: %w", err)
	}
	return rows, nil
}

var circleColumns = ColumnMap{
	FieldDistrictCode:    "v.district_code",
	FieldCircleCode:      "v.circle_code",
	FieldCircleListPrice: "t.avg_list_price",
}

// TopCircles returns the highest-scoring circles matching the predicate,
// joining the latest transaction statistics for display
func (r *PostgresRepository) TopCircles(
	ctx context.Context,
	where Predicate,
	weights model.WeightVector,
	limit int,
) ([]model.CircleRecommendation, error) {
	args := &Args{}

	scoreExpr := fmt.Sprintf(`ROUND((
			v.avg_base_score * %s +
			v.avg_living_score * %s +
			v.avg_traffic_score * %s +
			v.avg_school_score * %s +
			v.avg_hospital_score * %s +
			v.avg_park_score * %s +
			v.avg_restaurant_score * %s
		)::numeric, 2)`,
		args.Add(weights[model.DimBase]),
		args.Add(weights[model.DimLiving]),
		args.Add(weights[model.DimTraffic]),
		args.Add(weights[model.DimSchool]),
		args.Add(weights[model.DimHospital]),
		args.Add(weights[model.DimPark]),
		args.Add(weights[model.DimRestaurant]),
	)

	whereSQL := where.SQL(args, circleColumns)

	query := fmt.Sprintf(`
		SELECT v.circle_code, v.circle_name, v.district_name,
		       t.avg_list_price, t.avg_sign_price, t.transaction_count,
		       v.community_count,
		       v.avg_base_score, v.avg_living_score, v.avg_traffic_score,
		       v.avg_school_score, v.avg_hospital_score, v.avg_park_score,
		       v.avg_restaurant_score,
		       %s AS final_score
		FROM public.v_circle_scores v
		JOIN public.latest_circle_transactions t ON v.circle_code = t.circle_code
		WHERE %s
		ORDER BY final_score DESC, v.circle_code
		LIMIT %s
	`, scoreExpr, whereSQL, args.Add(limit))

	var rows []model.CircleRecommendation
	if err := r.db.SelectContext(ctx, &rows, query, args.Values()...); err != nil {
		return nil, fmt.Errorf("failed to fetch circle rankings: %w", err)
	}
	return rows, nil
}

// CommunityScores fetches score cards for the given community ids,
// merging the latest listing-price month-over-month row per community.
// IDs with no backing row yield a card with only the id set.
func (r *PostgresRepository) CommunityScores(ctx context.Context, communityIDs []string) ([]model.CommunityScore, error) {
	scoreQuery := `
		SELECT c.id, c.name, c.alias, c.district_code, c.district_name,
		       c.circle_code, c.circle_name, c.grade,
		       r.ring, r.year_range,
		       r.base_score, r.living_score, r.traffic_score, r.school_score,
		       r.hospital_score, r.park_score, r.restaurant_score,
		       r.avg_listing_price
		FROM public.v_community c
		JOIN public.community_scores_ranking r ON c.id = r.id
		WHERE c.id = ANY($1)
	`
	var scoreRows []model.CommunityScore
	if err := r.db.SelectContext(ctx, &scoreRows, scoreQuery, pq.Array(communityIDs)); err != nil {
		return nil, fmt.Errorf("failed to fetch community scores: %w", err)
	}

	priceQuery := `
		SELECT community_id, latest_month, latest_avg_price, prev_avg_price, mom_ratio
		FROM public.v_community_listing_price_mom
		WHERE community_id = ANY($1)
	`
	var priceRows []struct {
		CommunityID    string   `db:"community_id"`
		LatestMonth    *string  `db:"latest_month"`
		LatestAvgPrice *float64 `db:"latest_avg_price"`
		PrevAvgPrice   *float64 `db:"prev_avg_price"`
		MomRatio       *float64 `db:"mom_ratio"`
	}
	if err := r.db.SelectContext(ctx, &priceRows, priceQuery, pq.Array(communityIDs)); err != nil {
		return nil, fmt.Errorf("failed to fetch community prices: %w", err)
	}

	scoreMap := make(map[string]model.CommunityScore, len(scoreRows))
	for _, row := range scoreRows {
		scoreMap[row.ID] = row
	}

	result := make([]model.CommunityScore, 0, len(communityIDs))
	for _, id := range communityIDs {
		card := scoreMap[id]
		card.ID = id
		for _, p := range priceRows {
			if p.CommunityID == id {
				card.LatestMonth = p.LatestMonth
				card.LatestAvgPrice = p.LatestAvgPrice
				card.PrevAvgPrice = p.PrevAvgPrice
				card.MomRatio = p.MomRatio
				break
			}
		}
		result = append(result, card)
	}
	return result, nil
}

// CircleScores fetches score cards for the given circle codes
func (r *PostgresRepository) CircleScores(ctx context.Context, circleCodes []string) ([]model.CircleScore, error) {
	scoreQuery := `
		SELECT district_code, district_name, circle_code, circle_name, community_count,
		       avg_base_score, avg_base_score_rank, avg_base_score_percentile,
		       avg_living_score, avg_living_score_rank, avg_living_score_percentile,
		       avg_traffic_score, avg_traffic_score_rank, avg_traffic_score_percentile,
		       avg_school_score, avg_school_score_rank, avg_school_score_percentile,
		       avg_hospital_score, avg_hospital_score_rank, avg_hospital_score_percentile,
		       avg_park_score, avg_park_score_rank, avg_park_score_percentile,
		       avg_restaurant_score, avg_restaurant_score_rank, avg_restaurant_score_percentile
		FROM public.circle_score_rankings
		WHERE circle_code = ANY($1)
	`
	var scoreRows []model.CircleScore
	if err := r.db.SelectContext(ctx, &scoreRows, scoreQuery, pq.Array(circleCodes)); err != nil {
		return nil, fmt.Errorf("failed to fetch circle scores: %w", err)
	}

	priceQuery := `
		SELECT circle_code, latest_month, latest_avg_price, prev_avg_price, mom_ratio
		FROM public.v_circle_avg_price_monthly_ratio
		WHERE circle_code = ANY($1)
	`
	var priceRows []struct {
		CircleCode     string   `db:"circle_code"`
		LatestMonth    *string  `db:"latest_month"`
		LatestAvgPrice *float64 `db:"latest_avg_price"`
		PrevAvgPrice   *float64 `db:"prev_avg_price"`
		MomRatio       *float64 `db:"mom_ratio"`
	}
	if err := r.db.SelectContext(ctx, &priceRows, priceQuery, pq.Array(circleCodes)); err != nil {
		return nil, fmt.Errorf("failed to fetch circle prices: %w", err)
	}

	scoreMap := make(map[string]model.CircleScore, len(scoreRows))
	for _, row := range scoreRows {
		scoreMap[row.CircleCode] = row
	}

	result := make([]model.CircleScore, 0, len(circleCodes))
	for _, code := range circleCodes {
		card := scoreMap[code]
		card.CircleCode = code
		for _, p := range priceRows {
			if p.CircleCode == code {
				card.LatestMonth = p.LatestMonth
				card.LatestAvgPrice = p.LatestAvgPrice
				card.PrevAvgPrice = p.PrevAvgPrice
				card.MomRatio = p.MomRatio
				break
			}
		}
		result = append(result, card)
	}
	return result, nil
}

// SuggestCommunities runs prefix and fuzzy matching against community
// names and aliases. Match class ordering: name prefix, then alias
// prefix, then fuzzy substring, ties broken by name.
func (r *PostgresRepository) SuggestCommunities(ctx context.Context, q string, limit int) ([]model.CommunitySuggestion, error) {
	query := `
		SELECT id, name, alias, circle_code, circle_name, district_code, district_name,
		       (CASE WHEN name ILIKE $1 || '%' THEN 0
		             WHEN alias ILIKE $1 || '%' THEN 1
		             ELSE 2 END) AS match_type
		FROM public.v_community
		WHERE name ILIKE $1 || '%' OR alias ILIKE $1 || '%' OR name ILIKE '%' || $1 || '%'
		ORDER BY match_type, name
		LIMIT $2
	`
	var rows []model.CommunitySuggestion
	if err := r.db.SelectContext(ctx, &rows, query, q, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	for i := range rows {
		// Alias hits display the alias, everything else the name
		if rows[i].MatchType == 1 && rows[i].Alias != nil && *rows[i].Alias != "" {
			rows[i].DisplayName = *rows[i].Alias
		} else {
			rows[i].DisplayName = rows[i].Name
		}
	}
	return rows, nil
}

// LatestMarketOverview returns the most recent market snapshot, or
// sql.ErrNoRows wrapped when the table is empty
func (r *PostgresRepository) LatestMarketOverview(ctx context.Context) (*model.MarketOverview, error) {
	query := `
		SELECT id, snapshot_date, overview_data, data_source, created_at, updated_at
		FROM public.sh_secondhand_market_overview
		ORDER BY id DESC LIMIT 1
	`
	var row model.MarketOverview
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("failed to fetch market overview: %w", err)
	}
	return &row, nil
}

// LatestPropertyPolicy returns the most recent policy row, or
// sql.ErrNoRows wrapped when the table is empty
func (r *PostgresRepository) LatestPropertyPolicy(ctx context.Context) (*model.PropertyPolicy, error) {
	query := `
		SELECT id, policy_date, policy_data, data_source, created_at, updated_at
		FROM public.sh_property_policies
		ORDER BY id DESC LIMIT 1
	`
	var row model.PropertyPolicy
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return nil, fmt.Errorf("failed to fetch property policy: %w", err)
	}
	return &row, nil
}
