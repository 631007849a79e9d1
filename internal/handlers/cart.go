// internal/handlers/cart.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/woocom/woocom-backend/internal/i18n"
	"github.com/woocom/woocom-backend/internal/services"
	"github.com/woocom/woocom-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /cart/:email
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Param("email"))
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			utils.NotFoundResponse(c, "cart")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	utils.SuccessResponse(c, cart)
}

// PUT /cart/:email
func (h *CartHandler) AddLineItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AddLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.cartService.AddLineItem(c.Param("email"), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyInCart):
			utils.MessageResponse(c, i18n.T(lang, i18n.KeyCartDuplicate), nil)
		case errors.Is(err, services.ErrOutOfStock):
			utils.MessageResponse(c, i18n.T(lang, i18n.KeyCartOutOfStock), nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.MessageResponse(c, i18n.T(lang, i18n.KeyCartAdded), cart)
}

// PUT /cart/:email/items/:productId/quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.cartService.UpdateLineItemQuantity(c.Param("email"), c.Param("productId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartNotFound):
			utils.NotFoundResponse(c, "cart")
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, cart)
}

// PUT /cart/:email/items/:productId
func (h *CartHandler) UpdateLineItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	cart, err := h.cartService.UpdateLineItem(c.Param("email"), c.Param("productId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCartNotFound):
			utils.NotFoundResponse(c, "cart")
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, cart)
}

// DELETE /cart/:email/items/:productId
func (h *CartHandler) RemoveLineItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.cartService.RemoveLineItem(c.Param("email"), c.Param("productId")); err != nil {
		switch {
		case errors.Is(err, services.ErrCartNotFound):
			utils.NotFoundResponse(c, "cart")
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.MessageResponse(c, i18n.T(lang, i18n.KeyCartItemRemoved), nil)
}

// POST /cart/:email/address
func (h *CartHandler) AddAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	cart, err := h.cartService.AddAddress(c.Param("email"), &req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.MessageResponse(c, i18n.T(lang, i18n.KeyCartAddressAdded), cart)
}

// PUT /cart/:email/address
func (h *CartHandler) UpdateAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	cart, err := h.cartService.UpdateAddress(c.Param("email"), &req)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			utils.NotFoundResponse(c, "cart")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.MessageResponse(c, i18n.T(lang, i18n.KeyCartAddressUpdated), cart)
}

// PUT /cart/:email/address/select
func (h *CartHandler) SelectAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		AddressID int64 `json:"addressId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	cart, err := h.cartService.SelectAddress(c.Param("email"), req.AddressID)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			utils.NotFoundResponse(c, "cart")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, cart)
}

// DELETE /cart/:email/address/:addressId
func (h *CartHandler) RemoveAddress(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	addressID, err := strconv.ParseInt(c.Param("addressId"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid address ID", nil)
		return
	}

	if err := h.cartService.RemoveAddress(c.Param("email"), addressID); err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			utils.NotFoundResponse(c, "cart")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.MessageResponse(c, i18n.T(lang, i18n.KeyCartAddressRemoved), nil)
}
