package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realtorai/internal/model"
	"realtorai/internal/service"
)

// RequirementHandler parses free-text requirements and infers weights
type RequirementHandler struct {
	parser     *service.RequirementParser
	inferencer *service.WeightInferencer
}

// NewRequirementHandler creates a requirement handler
func NewRequirementHandler(parser *service.RequirementParser, inferencer *service.WeightInferencer) *RequirementHandler {
	return &RequirementHandler{parser: parser, inferencer: inferencer}
}

// Parse handles POST /api/parse-requirement
func (h *RequirementHandler) Parse(c *gin.Context) {
	var req model.RawTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	parsed, err := h.parser.Parse(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parsed)
}

// InferWeights handles POST /api/infer-weights
func (h *RequirementHandler) InferWeights(c *gin.Context) {
	var req model.WeightInferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	weights := h.inferencer.Infer(c.Request.Context(), req.Requirement, req.Alpha)
	c.JSON(http.StatusOK, model.WeightInferResponse{Weights: weights})
}
