package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realtorai/internal/config"
	"realtorai/internal/model"
	"realtorai/internal/service"
)

// RecommendHandler serves ranked community and circle recommendations
type RecommendHandler struct {
	communities *service.CommunityRecommender
	circles     *service.CircleRecommender
	ranking     config.RankingConfig
}

// NewRecommendHandler creates a recommendation handler
func NewRecommendHandler(
	communities *service.CommunityRecommender,
	circles *service.CircleRecommender,
	ranking config.RankingConfig,
) *RecommendHandler {
	return &RecommendHandler{communities: communities, circles: circles, ranking: ranking}
}

// Communities handles POST /api/recommend-communities
func (h *RecommendHandler) Communities(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	limit, factor := h.applyDefaults(&req)

	start := time.Now()
	rows, err := h.communities.Recommend(c.Request.Context(), req.ParsedRequirement, req.CustomWeights, limit, factor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.RecommendResponse{
		SearchID:       uuid.New().String(),
		TopCommunities: rows,
		Took:           time.Since(start).Milliseconds(),
	})
}

// Circles handles POST /api/recommend-circles
func (h *RecommendHandler) Circles(c *gin.Context) {
	var req model.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	limit, factor := h.applyDefaults(&req)

	start := time.Now()
	rows, err := h.circles.Recommend(c.Request.Context(), req.ParsedRequirement, req.CustomWeights, limit, factor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CircleRecommendResponse{
		SearchID:   uuid.New().String(),
		TopCircles: rows,
		Took:       time.Since(start).Milliseconds(),
	})
}

// applyDefaults clamps the limit to the configured window and fills the
// random factor default. A nil random factor means "server default";
// an explicit 0 disables jitter.
func (h *RecommendHandler) applyDefaults(req *model.RecommendRequest) (limit int, factor float64) {
	limit = req.Limit
	if limit <= 0 {
		limit = h.ranking.DefaultLimit
	}
	if limit > h.ranking.MaxLimit {
		limit = h.ranking.MaxLimit
	}

	factor = h.ranking.DefaultRandomFactor
	if req.RandomFactor != nil && *req.RandomFactor >= 0 {
		factor = *req.RandomFactor
	}
	return limit, factor
}
