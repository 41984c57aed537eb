package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/backend/internal/model"
	"github.com/fintrack/backend/internal/service"
)

type GPTHandler struct {
	classify *service.ClassifyService
	advisor  *service.AdvisorService
}

func NewGPTHandler(classify *service.ClassifyService, advisor *service.AdvisorService) *GPTHandler {
	return &GPTHandler{classify: classify, advisor: advisor}
}

// Categorize godoc
// @Summary Classify a free-text transaction description
// @Tags gpt
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CategorizeRequest true "Transaction description"
// @Success 200 {object} model.CategorizeResult
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/gpt/categorize [post]
func (h *GPTHandler) Categorize(c *gin.Context) {
	var req model.CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.classify.Classify(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recommendations godoc
// @Summary Get personalized finance recommendations
// @Tags gpt
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.RecommendationsResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/gpt/recommendations [get]
func (h *GPTHandler) Recommendations(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: "unauthorized"})
		return
	}

	recommendations, err := h.advisor.Recommend(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.RecommendationsResponse{Recommendations: recommendations})
}
