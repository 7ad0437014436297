// Package dialect provides database-specific DDL rendering.
// Each dialect implements schema.Renderer: table framing, column rendering,
// and index statements. Renderers are stateless and selected at runtime by
// name, so a CLI flag can pick the target database.
package dialect

import "github.com/forcekit/forcesql/internal/schema"

// Get returns the renderer for the given dialect name.
// Valid names: "postgres", "postgresql".
// Returns nil if the dialect is not supported.
func Get(name string) schema.Renderer {
	switch name {
	case "postgres", "postgresql":
		return Postgres()
	default:
		return nil
	}
}

// Names returns the list of supported dialect names.
func Names() []string {
	return []string{"postgres"}
}
