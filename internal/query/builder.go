package query

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/shieldpool/subgraph-go/internal/codec"
	"github.com/shieldpool/subgraph-go/internal/graph"
	"github.com/shieldpool/subgraph-go/internal/logger"
)

// Builder is the generic query engine. It owns a Config, renders the wire
// query plus its variables from it, executes through the injected transport,
// and decodes the result. Per-entity builders wrap it with domain sugar.
//
// A Builder is single-owner and not safe for concurrent mutation; Clone is
// the supported way to branch a configuration. Every derived read operation
// clones before narrowing, so convenience methods never mutate the receiver.
type Builder[T any] struct {
	spec Spec
	cfg  Config
	exec graph.Executor
}

// New creates a builder for the given entity spec and transport
func New[T any](spec Spec, exec graph.Executor) *Builder[T] {
	return &Builder[T]{
		spec: spec,
		cfg:  newConfig(spec),
		exec: exec,
	}
}

// Clone returns an independent copy of the builder; mutating the copy's
// predicate map does not alter the original
func (b *Builder[T]) Clone() *Builder[T] {
	return &Builder[T]{
		spec: b.spec,
		cfg:  b.cfg.Clone(),
		exec: b.exec,
	}
}

// Config returns a copy of the current configuration
func (b *Builder[T]) Config() Config {
	return b.cfg.Clone()
}

// Where merges predicates into the active predicate map. A later call
// overwrites an earlier value for the same key.
func (b *Builder[T]) Where(preds map[string]any) *Builder[T] {
	for k, v := range preds {
		b.cfg.Where[k] = v
	}
	return b
}

// OrderBy replaces the ordering field and direction
func (b *Builder[T]) OrderBy(field, direction string) *Builder[T] {
	b.cfg.OrderBy = field
	b.cfg.OrderDir = direction
	return b
}

// Limit sets the page size; negative values are clamped to zero
func (b *Builder[T]) Limit(n int) *Builder[T] {
	if n < 0 {
		n = 0
	}
	b.cfg.First = n
	return b
}

// Skip sets the page offset; negative values are clamped to zero
func (b *Builder[T]) Skip(n int) *Builder[T] {
	if n < 0 {
		n = 0
	}
	b.cfg.Skip = n
	return b
}

// Select replaces the field-selection block. Results for a custom selection
// should be read through ExecuteRaw, since the typed mapping assumes the
// default block.
func (b *Builder[T]) Select(fields ...string) *Builder[T] {
	b.cfg.Fields = fields
	return b
}

// Render produces the wire query string and its variables map. Exactly one
// variable is declared per predicate key present in both the where-map and
// the entity's filter table; unused declarations are a protocol error and
// are never emitted. Predicate keys absent from the table are dropped with a
// diagnostic. Ordering is emitted inline since its values come from the
// entity table, never from caller input.
func (b *Builder[T]) Render() (string, map[string]any) {
	keys := make([]string, 0, len(b.cfg.Where))
	for k := range b.cfg.Where {
		if _, ok := b.spec.Filters[k]; !ok {
			logger.Warn("unknown predicate key dropped",
				zap.String("collection", b.spec.Collection),
				zap.String("key", k))
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	decls := []string{"$first: Int!", "$skip: Int!"}
	conds := make([]string, 0, len(keys))
	vars := map[string]any{
		"first": b.cfg.First,
		"skip":  b.cfg.Skip,
	}
	for _, k := range keys {
		f := b.spec.Filters[k]
		decls = append(decls, fmt.Sprintf("$%s: %s", f.Var, f.Type))
		conds = append(conds, f.Cond)
		vars[f.Var] = encodeVariable(b.cfg.Where[k], f.Type)
	}

	args := fmt.Sprintf("first: $first, skip: $skip, orderBy: %s, orderDirection: %s", b.cfg.OrderBy, b.cfg.OrderDir)
	if len(conds) > 0 {
		args += fmt.Sprintf(", where: {%s}", strings.Join(conds, ", "))
	}

	fields := b.cfg.Fields
	if len(fields) == 0 {
		fields = b.spec.DefaultFields
	}

	q := fmt.Sprintf("query %s(%s) {\n  %s(%s) {\n    %s\n  }\n}",
		b.spec.Operation,
		strings.Join(decls, ", "),
		b.spec.Collection,
		args,
		strings.Join(fields, "\n    "))

	return q, vars
}

// encodeVariable serializes one predicate value for the wire. Arithmetic
// values become decimal strings; values bound to Int-typed variables stay
// plain JSON numbers.
func encodeVariable(v any, wireType string) any {
	if strings.HasPrefix(wireType, "Int") {
		return v
	}
	return codec.DeepEncode(v)
}

// Execute renders the query, runs it through the transport, and returns the
// decoded entity slice. Zero matching records yields an empty slice, not an
// error; transport failures propagate unretried.
func (b *Builder[T]) Execute(ctx context.Context) ([]T, error) {
	raw, err := b.executeRaw(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", b.spec.Collection, err)
	}
	return out, nil
}

// ExecuteRaw runs the query and returns generic records with the leaves
// named in the entity's numeric allow-list decoded to big.Int. This is the
// read path for custom field selections.
func (b *Builder[T]) ExecuteRaw(ctx context.Context) ([]map[string]any, error) {
	raw, err := b.executeRaw(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []map[string]any{}, nil
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s result: %w", b.spec.Collection, err)
	}
	for i, rec := range records {
		records[i] = codec.DecodeByFieldList(rec, b.spec.NumericFields).(map[string]any)
	}
	return records, nil
}

func (b *Builder[T]) executeRaw(ctx context.Context) (json.RawMessage, error) {
	q, vars := b.Render()
	data, err := b.exec.Execute(ctx, b.spec.Operation, q, vars)
	if err != nil {
		return nil, err
	}
	raw, ok := data[b.spec.Collection]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}

// First executes with a page size of one and returns the single record, or
// nil when nothing matches. Not-found is never an error.
func (b *Builder[T]) First(ctx context.Context) (*T, error) {
	results, err := b.Clone().Limit(1).Execute(ctx)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// Exists reports whether any record matches the current predicate set
func (b *Builder[T]) Exists(ctx context.Context) (bool, error) {
	first, err := b.First(ctx)
	if err != nil {
		return false, err
	}
	return first != nil, nil
}
