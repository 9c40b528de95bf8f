package handlers

import "github.com/gofiber/fiber/v2"

// Version is reported by the index route.
const Version = "1.0.0"

var availableRoutes = fiber.Map{
	"auth":     []string{"/auth/register", "/auth/login"},
	"products": []string{"/collection/Products", "/collection/Products/search"},
	"chatbot":  []string{"/chatbot/respond"},
}

// HandleIndex describes the service and its public endpoints.
func HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "RapidReads API Server",
		"version": Version,
		"status":  "Running",
		"endpoints": fiber.Map{
			"auth": fiber.Map{
				"register": "POST /auth/register",
				"login":    "POST /auth/login",
			},
			"products": fiber.Map{
				"all":    "GET /collection/Products",
				"search": "GET /collection/Products/search?q=searchterm",
			},
			"chatbot": "POST /chatbot/respond",
		},
	})
}

// HandleNotFound answers any unmatched route.
func HandleNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message":         "Route not found",
		"availableRoutes": availableRoutes,
	})
}
