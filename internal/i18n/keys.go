// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"
	KeyAuthAccessDenied = "auth.access_denied"

	// Users
	KeyUserNotFound       = "user.not_found"
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserRoleUpdated    = "user.role_updated"

	// Products
	KeyProductCreated  = "product.created"
	KeyProductUpdated  = "product.updated"
	KeyProductDeleted  = "product.deleted"
	KeyProductNotFound = "product.not_found"

	// Cart
	KeyCartAdded          = "cart.added"
	KeyCartDuplicate      = "cart.duplicate"
	KeyCartOutOfStock     = "cart.out_of_stock"
	KeyCartItemRemoved    = "cart.item_removed"
	KeyCartNotFound       = "cart.not_found"
	KeyCartAddressAdded   = "cart.address_added"
	KeyCartAddressUpdated = "cart.address_updated"
	KeyCartAddressRemoved = "cart.address_removed"

	// Orders
	KeyOrderPlaced        = "order.placed"
	KeyOrderEmpty         = "order.empty"
	KeyOrderCanceled      = "order.canceled"
	KeyOrderRemoved       = "order.removed"
	KeyOrderStatusUpdated = "order.status_updated"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderBadTransition = "order.bad_transition"

	// Reviews
	KeyReviewAdded     = "review.added"
	KeyReviewDuplicate = "review.duplicate"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
