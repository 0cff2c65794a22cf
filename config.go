package bigo

// Config holds resource budgets for one analysis request. Budgets make
// pathological or deeply nested input fail fast with
// [ResourceLimitError] instead of consuming unbounded time or memory.
type Config struct {
	// MaxTokens caps the token stream length (default: 100000).
	// Zero uses the default; negative disables the cap.
	MaxTokens int

	// MaxDepth caps statement nesting depth (default: 256).
	// Zero uses the default; negative disables the cap.
	MaxDepth int
}

const (
	defaultMaxTokens = 100000
	defaultMaxDepth  = 256
)

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.MaxTokens < 0 {
		c.MaxTokens = 0
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = defaultMaxDepth
	}
	if c.MaxDepth < 0 {
		c.MaxDepth = 0
	}
}
