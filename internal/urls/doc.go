// Package urls provides centralized constants for the documentation URLs
// printed by the CLI and the form.
//
// Usage:
//
//	import "github.com/joannywerner/registrar/internal/urls"
//
//	fmt.Printf("For more information, see: %s\n", urls.BackendGuide)
package urls
