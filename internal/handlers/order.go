// internal/handlers/order.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/woocom/woocom-backend/internal/i18n"
	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/services"
	"github.com/woocom/woocom-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders/:email
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.PlaceOrder(c.Param("email"), &req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyOrder) {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyOrderEmpty), nil)
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderPlaced),
		"order":   order,
	})
}

// GET /orders?seller=
// Seller-facing listing of orders that carry the seller's products.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrdersBySeller(c.Query("seller"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, orders)
}

// GET /orders/:email
func (h *OrderHandler) ListOrdersByUser(c *gin.Context) {
	orders, err := h.orderService.ListOrdersByUser(c.Param("email"))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, orders)
}

// PUT /orders/:status/:email/:orderId
// Drives the order through its lifecycle. Shipping settles commissions and
// inventory; cancellation records the reason and nothing else.
func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	target := models.OrderStatus(c.Param("status"))
	if !target.Valid() {
		utils.BadRequestResponse(c, "Invalid order status", nil)
		return
	}

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	var payload services.TransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.orderService.TransitionStatus(c.Param("email"), orderID, target, &payload)
	if err != nil {
		var transitionErr *services.InvalidTransitionError
		var payloadErr *services.InvalidPayloadError
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.NotFoundResponse(c, "order")
		case errors.As(err, &transitionErr):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyOrderBadTransition))
		case errors.As(err, &payloadErr):
			utils.BadRequestResponse(c, payloadErr.Error(), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	message := i18n.T(lang, i18n.KeyOrderStatusUpdated)
	if target == models.OrderStatusCanceled {
		message = i18n.T(lang, i18n.KeyOrderCanceled)
	}
	utils.MessageResponse(c, message, order)
}

// DELETE /orders/:email/:orderId
func (h *OrderHandler) RemoveOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid order ID", nil)
		return
	}

	if err := h.orderService.RemoveOrder(c.Param("email"), orderID); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.NotFoundResponse(c, "order")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.MessageResponse(c, i18n.T(lang, i18n.KeyOrderRemoved), nil)
}
