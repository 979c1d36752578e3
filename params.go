package sqlbuilder

import (
	"fmt"
	"strings"
)

// Scope is the clause a group of bound values belongs to.
type Scope int

const (
	ScopeTable Scope = iota
	ScopeJoin
	ScopeWhere
	ScopeHaving
)

// scopeOrder is the order the clauses appear in rendered SQL, and therefore
// the order their placeholders must be bound in.
var scopeOrder = [...]Scope{ScopeTable, ScopeJoin, ScopeWhere, ScopeHaving}

func (s Scope) String() string {
	switch s {
	case ScopeTable:
		return "table"
	case ScopeJoin:
		return "join"
	case ScopeWhere:
		return "where"
	case ScopeHaving:
		return "having"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// Params holds the values bound within one scope. Types has exactly one tag
// per entry in Values.
type Params struct {
	Types  string
	Values []any
}

func (p Params) clone() Params {
	return Params{Types: p.Types, Values: append([]any{}, p.Values...)}
}

func checkParams(op, types string, values []any) error {
	if len(types) != len(values) {
		return &PreconditionError{
			Op:  op,
			Msg: fmt.Sprintf("%d type tags for %d values", len(types), len(values)),
		}
	}
	return nil
}

// addParam expects types and values to have been checked by the caller.
func (b *Builder) addParam(scope Scope, types string, values []any) {
	if len(values) == 0 {
		return
	}

	p, ok := b.params[scope]
	if !ok {
		p = &Params{}
		b.params[scope] = p
	}

	p.Types += types
	p.Values = append(p.Values, values...)
}

// FlattenParams concatenates every scope in clause order.
func (b *Builder) FlattenParams() (string, []any) {
	var (
		types  strings.Builder
		values = []any{}
	)

	for _, scope := range scopeOrder {
		if p, ok := b.params[scope]; ok {
			types.WriteString(p.Types)
			values = append(values, p.Values...)
		}
	}

	return types.String(), values
}

// BindParameters returns the type string followed by every value, the shape
// of a (types, v1, v2, ...) bind call.
func (b *Builder) BindParameters() []any {
	types, values := b.FlattenParams()
	return append([]any{types}, values...)
}

// ScopeParams returns a copy of the values bound within a single scope.
func (b *Builder) ScopeParams(scope Scope) Params {
	if p, ok := b.params[scope]; ok {
		return p.clone()
	}
	return Params{Values: []any{}}
}
