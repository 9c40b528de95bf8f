package validation

import (
	"encoding/json"
	"strconv"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,trimmedmin=2"`
	LastName  string `json:"lastName" validate:"required,trimmedmin=2"`
	Email     string `json:"email" validate:"required,simpleemail"`
	Password  string `json:"password" validate:"required,min=6"`
}

// RegisterMessages are the client messages for RegisterRequest failures.
var RegisterMessages = Messages{
	"*.required":           "All fields are required",
	"FirstName.trimmedmin": "First name must be at least 2 characters",
	"LastName.trimmedmin":  "Last name must be at least 2 characters",
	"Email.simpleemail":    "Please provide a valid email address",
	"Password.min":         "Password must be at least 6 characters",
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var LoginMessages = Messages{
	"*.required": "Email and password are required",
}

// CartRequest is the body of POST /cart/add. ProductID accepts a JSON number
// or a numeric string.
type CartRequest struct {
	ProductID json.Number `json:"productId" validate:"required,intstring"`
	Quantity  *int        `json:"quantity" validate:"omitnil,min=1"`
}

var CartMessages = Messages{
	"ProductID.required":  "Product ID is required",
	"ProductID.intstring": "Product ID must be an integer",
	"Quantity.min":        "Quantity must be at least 1",
}

// DefaultQuantity is used when a cart request carries no quantity.
const DefaultQuantity = 1

// ProductLegacyID returns the parsed product id. Call after Validate.
func (r CartRequest) ProductLegacyID() int {
	id, _ := strconv.Atoi(r.ProductID.String())
	return id
}

// QuantityOrDefault returns the requested quantity, or DefaultQuantity.
func (r CartRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return DefaultQuantity
	}
	return *r.Quantity
}

// ChatbotRequest is the body of POST /chatbot/respond.
type ChatbotRequest struct {
	Message string `json:"message" validate:"required,trimmedmin=1"`
}

var ChatbotMessages = Messages{
	"*.required":         "Message is required",
	"Message.trimmedmin": "Message is required",
}
