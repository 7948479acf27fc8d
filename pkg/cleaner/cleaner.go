// Package cleaner defines the interface between the sanitization engine and
// its callers (the editor command and the CLI).
package cleaner

// Cleaner transforms an HTML fragment into a sanitized HTML fragment.
// Implementations must degrade gracefully: on internal failure they return
// the input unchanged rather than an error, so callers can treat any error
// as a hard host/IO problem.
type Cleaner interface {
	// Clean returns the sanitized form of the input HTML.
	Clean(html string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
