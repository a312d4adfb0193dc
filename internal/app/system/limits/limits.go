// internal/app/system/limits/limits.go
package limits

// Request body size limits.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBodySize caps user and article request bodies. Article
	// descriptions are rich text, so this is generous.
	MaxJSONBodySize = 1 << 20 // 1 MB
)
