package handlers

import (
	"rapidreads/internal/apperrors"
	"rapidreads/internal/middleware"
	"rapidreads/internal/services"
	"rapidreads/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validation.Validator
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, validate *validation.Validator) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validate,
	}
}

// RegisterRoutes registers the cart routes behind auth.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/cart/add", auth, h.HandleAddToCart)
}

// HandleAddToCart adds a product to the authenticated user's cart.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperrors.ErrUnauthenticated
	}

	var req validation.CartRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.validate.Validate(req, validation.CartMessages); err != nil {
		return err
	}

	if err := h.cartService.AddToCart(c.UserContext(), identity.UserID, req.ProductLegacyID(), req.QuantityOrDefault()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product added to cart successfully",
	})
}
