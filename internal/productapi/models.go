package productapi

// RegisterPath is the route that creates a product, relative to the backend
// base URL.
const RegisterPath = "/producto/registrar"

// CreateRequest is the JSON body of a product registration.
type CreateRequest struct {
	ProductID   string `json:"idproducto"`
	ProductName string `json:"nombre"`
}

// Response is the envelope the backend answers with, on success and on
// failure alike.
type Response struct {
	Msg string `json:"msg,omitempty"`
}
