package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redmonkez12/greennest-api/internal/httputil"
	"github.com/redmonkez12/greennest-api/internal/logging"
	"github.com/redmonkez12/greennest-api/internal/session"
	"github.com/redmonkez12/greennest-api/internal/validation"
)

// Handler serves the cart endpoints. Every route sits behind
// session.Manager.RequireAuth.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RemoveRequest names the product to drop from the cart
type RemoveRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// Response carries the cart after an operation
type Response struct {
	Success bool `json:"success"`
	Cart    Cart `json:"cart"`
}

// AddToCart handles adding a product
// @Summary      Add to cart
// @Description  Add one unit of a product. A product already in the cart gains one unit.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body Item true "Product"
// @Success      200 {object} Response
// @Failure      400 {object} httputil.ErrorResponse "Invalid product"
// @Failure      401 {object} httputil.ErrorResponse "Not logged in"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /add-to-cart [post]
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		respondNotAuthenticated(w)
		return
	}

	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		logger.Warn("invalid add-to-cart body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	if err := validation.Struct(&item); err != nil {
		httputil.RespondErrorWithCode(w, "Invalid product", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	c, err := h.service.AddItem(r.Context(), identity.ID, item)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to add to cart")
		return
	}

	httputil.RespondJSON(w, Response{Success: true, Cart: c}, http.StatusOK)
}

// GetCart returns the cart
// @Summary      Get cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} Response
// @Failure      401 {object} httputil.ErrorResponse "Not logged in"
// @Router       /get-cart [get]
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		respondNotAuthenticated(w)
		return
	}

	c, err := h.service.List(r.Context(), identity.ID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get cart")
		return
	}

	httputil.RespondJSON(w, Response{Success: true, Cart: c}, http.StatusOK)
}

// RemoveFromCart drops a product
// @Summary      Remove from cart
// @Description  Remove the line for a product. Unknown products leave the cart unchanged.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body RemoveRequest true "Product id"
// @Success      200 {object} Response
// @Failure      401 {object} httputil.ErrorResponse "Not logged in"
// @Router       /remove-from-cart [post]
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		respondNotAuthenticated(w)
		return
	}

	var req RemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid remove-from-cart body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	if err := validation.Struct(&req); err != nil {
		httputil.RespondErrorWithCode(w, "Product id required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	c, err := h.service.RemoveItem(r.Context(), identity.ID, req.ProductID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to remove from cart")
		return
	}

	httputil.RespondJSON(w, Response{Success: true, Cart: c}, http.StatusOK)
}

// Checkout empties the cart
// @Summary      Checkout
// @Description  Place the order by clearing the cart. No payment is taken.
// @Tags         cart
// @Produce      json
// @Success      200 {object} httputil.MessageResponse
// @Failure      401 {object} httputil.ErrorResponse "Not logged in"
// @Router       /checkout [post]
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		respondNotAuthenticated(w)
		return
	}

	if err := h.service.Checkout(r.Context(), identity.ID); err != nil {
		h.respondServiceError(w, r, err, "checkout failed")
		return
	}

	logging.GetLoggerFromContext(r.Context()).Info("order placed", "user_id", identity.ID)
	httputil.RespondMessage(w, "Order placed successfully")
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger := logging.GetLoggerFromContext(r.Context())

	if errors.Is(err, ErrUserNotFound) {
		logger.Warn(msg, "error", err)
		httputil.RespondErrorWithCode(w, "User not found", httputil.CodeUserNotFound, http.StatusNotFound)
		return
	}

	logger.Error(msg, "error", err)
	httputil.RespondInternalError(w)
}

func respondNotAuthenticated(w http.ResponseWriter) {
	httputil.RespondErrorWithCode(w, "Not logged in", httputil.CodeNotAuthenticated, http.StatusUnauthorized)
}
