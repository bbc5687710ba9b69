// Package query turns typed, chainable filter/sort/pagination requests into
// wire queries, executes them through an injected transport, and decodes the
// results into entity records with arbitrary-precision numeric leaves.
package query

// Filter binds one predicate key to its wire rendering. The variable name,
// wire type, and condition clause travel together in a single table entry so
// they cannot drift apart: adding a filter key is one declaration, consumed
// by the shared renderer.
type Filter struct {
	// Var is the wire variable name, e.g. "gasUsedGte"
	Var string
	// Type is the wire variable type declaration, e.g. "BigInt!"
	Type string
	// Cond is the where-clause condition referencing Var, e.g. "gasUsed_gte: $gasUsedGte"
	Cond string
}

// Spec declares everything entity-specific the generic builder needs: the
// root collection, default ordering and field selection, the predicate
// table, and the numeric-field allow-list driving raw decoding.
type Spec struct {
	// Collection is the root query field, e.g. "memberships"
	Collection string
	// Operation is the wire operation name, e.g. "Memberships"
	Operation string
	// OrderBy and OrderDir are the default ordering, commonly most recent first
	OrderBy  string
	OrderDir string
	// DefaultFields is the canonical selection block, one entry per line;
	// an entry may carry a nested block such as "pool { id asset }"
	DefaultFields []string
	// Filters maps predicate keys accepted by Where to their wire rendering
	Filters map[string]Filter
	// NumericFields names the leaves decoded to big.Int on the raw result path
	NumericFields []string
}
