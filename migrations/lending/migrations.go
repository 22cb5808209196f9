// Package lending embeds the goose migrations of the lending schema.
package lending

import "embed"

// FS holds every *.sql migration in version order.
//
//go:embed *.sql
var FS embed.FS
