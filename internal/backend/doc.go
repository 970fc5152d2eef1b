// Package backend is a development stand-in for the product REST backend.
//
// It serves the single route the registration form uses, so the form can be
// exercised end to end without the real service:
//
//	POST /producto/registrar   {"idproducto": "42", "nombre": "Teclado"}
//	  201 {"msg": "Producto registrado correctamente"}
//	  400 {"msg": ...}  malformed body, empty or non-numeric id, empty name
//	  409 {"msg": ...}  id already registered
//
// Two routes are added for inspection:
//
//	GET /producto/{idproducto}  the stored product, or 404
//	GET /producto/eventos       websocket stream of {"type":"registrado","producto":{...}}
//
// Registered ids are kept in memory (patrickmn/go-cache) and optionally
// expire, so the backend can be left running while testing duplicates.
// Nothing is persisted.
//
// # Usage Example
//
//	srv := backend.New(&backend.Config{Host: "localhost", Port: 4000})
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start blocks until ctx is cancelled or the process receives SIGINT or
// SIGTERM. With Config.Advertise set the backend is also announced over mDNS
// (see package discovery).
package backend
