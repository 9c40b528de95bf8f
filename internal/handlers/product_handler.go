package handlers

import (
	"rapidreads/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers the catalog routes. Search is registered ahead of
// the id route so "search" is never taken for an id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/collection/Products")
	products.Get("/", h.HandleList)
	products.Get("/search", h.HandleSearch)
	products.Get("/:id", h.HandleGet)
}

func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.productService.ListProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleSearch(c *fiber.Ctx) error {
	products, err := h.productService.SearchProducts(c.UserContext(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}
