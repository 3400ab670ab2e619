package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realtorai/internal/model"
	"realtorai/internal/service"
)

// ScoreHandler serves score-card lookups and community autocomplete
type ScoreHandler struct {
	scores *service.ScoreService
}

// NewScoreHandler creates a score handler
func NewScoreHandler(scores *service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// CommunityScores handles POST /api/community-scores
func (h *ScoreHandler) CommunityScores(c *gin.Context) {
	var req model.CommunityScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cards, err := h.scores.CommunityScores(c.Request.Context(), req.CommunityIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CommunityScoreResponse{Communities: cards})
}

// CircleScores handles POST /api/circle-scores
func (h *ScoreHandler) CircleScores(c *gin.Context) {
	var req model.CircleScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	cards, err := h.scores.CircleScores(c.Request.Context(), req.CircleCodes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CircleScoreResponse{Circles: cards})
}

// Suggest handles GET /api/community-suggest?q=...&limit=...
func (h *ScoreHandler) Suggest(c *gin.Context) {
	q := c.Query("q")

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= 50 {
			limit = n
		}
	}

	suggestions, err := h.scores.Suggest(c.Request.Context(), q, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuggestResponse{Suggestions: suggestions})
}
