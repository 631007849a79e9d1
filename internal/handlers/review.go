// internal/handlers/review.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/woocom/woocom-backend/internal/i18n"
	"github.com/woocom/woocom-backend/internal/services"
	"github.com/woocom/woocom-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// PUT /reviews/:email
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.SubmitReview(c.Param("email"), &req)
	if err != nil {
		var payloadErr *services.InvalidPayloadError
		switch {
		case errors.Is(err, services.ErrAlreadyReviewed):
			utils.MessageResponse(c, i18n.T(lang, i18n.KeyReviewDuplicate), nil)
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		case errors.As(err, &payloadErr):
			utils.BadRequestResponse(c, payloadErr.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.MessageResponse(c, i18n.T(lang, i18n.KeyReviewAdded), review)
}

// GET /reviews?user=&product=
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	if user := c.Query("user"); user != "" {
		reviews, err := h.reviewService.ReviewsByUser(user)
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		utils.SuccessResponse(c, reviews)
		return
	}

	if product := c.Query("product"); product != "" {
		reviews, err := h.reviewService.ReviewsByProduct(product)
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		utils.SuccessResponse(c, reviews)
		return
	}

	utils.BadRequestResponse(c, "Either user or product query parameter is required", nil)
}
