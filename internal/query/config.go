package query

// DefaultFirst is the page size used when the caller sets no explicit limit
const DefaultFirst = 100

// Config holds the accumulated state of one query: pagination, ordering,
// field selection, and the active predicate map. A Config is never shared
// between builders; Clone produces an independent copy.
type Config struct {
	First    int
	Skip     int
	OrderBy  string
	OrderDir string
	// Fields overrides the entity's default selection block when non-empty
	Fields []string
	// Where is the active predicate map, keyed by filter name
	Where map[string]any
}

func newConfig(spec Spec) Config {
	return Config{
		First:    DefaultFirst,
		Skip:     0,
		OrderBy:  spec.OrderBy,
		OrderDir: spec.OrderDir,
		Where:    make(map[string]any),
	}
}

// Clone returns a deep copy sharing no mutable state with the receiver
func (c Config) Clone() Config {
	out := c
	out.Where = make(map[string]any, len(c.Where))
	for k, v := range c.Where {
		out.Where[k] = v
	}
	if c.Fields != nil {
		out.Fields = make([]string, len(c.Fields))
		copy(out.Fields, c.Fields)
	}
	return out
}
