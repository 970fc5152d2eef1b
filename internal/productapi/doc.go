// Package productapi provides the HTTP client for the product backend.
//
// The backend exposes one route used by the registration form:
//
//	POST {base}/producto/registrar
//	{"idproducto": "42", "nombre": "Teclado"}
//
// Both successful and failed answers share the envelope {"msg": "..."}.
//
// # Usage Example
//
//	client := productapi.NewClient("http://localhost:4000")
//	resp, err := client.CreateProduct(ctx, productapi.CreateRequest{
//	    ProductID:   "42",
//	    ProductName: "Teclado",
//	})
//	if err != nil {
//	    log.Printf("rejected: %s", productapi.ServerMessage(err))
//	    return
//	}
//	log.Printf("registered: %s", resp.Msg)
//
// # Error Handling
//
// Every failure is an *APIError. Transport failures are classified
// (timeout, connection refused, DNS, generic network); non-2xx answers are
// ErrTypeHTTP and keep the decoded envelope in Payload so callers can show
// the backend's own message. The client never retries.
package productapi
