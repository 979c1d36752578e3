package qb

import (
	"fmt"
	"reflect"
	"strings"
)

func Eq(col string, val any) Expr {
	return WhereExpr{col: col, op: "=", args: []any{val}}
}

func Neq(col string, val any) Expr {
	return WhereExpr{col: col, op: "<>", args: []any{val}}
}

func Gt(col string, val any) Expr {
	return WhereExpr{col: col, op: ">", args: []any{val}}
}

func Lt(col string, val any) Expr {
	return WhereExpr{col: col, op: "<", args: []any{val}}
}

func Gte(col string, val any) Expr {
	return WhereExpr{col: col, op: ">=", args: []any{val}}
}

func Lte(col string, val any) Expr {
	return WhereExpr{col: col, op: "<=", args: []any{val}}
}

func Between(col string, a, b any) Expr {
	return WhereExpr{col: col, raw: " BETWEEN ? AND ?", args: []any{a, b}}
}

// Raw passes s through untouched; args must match its placeholders.
func Raw(s string, args ...any) Expr {
	return WhereExpr{raw: s, args: args}
}

func Null(col string) Expr {
	return WhereExpr{col: col, raw: " IS NULL"}
}

func NotNull(col string) Expr {
	return WhereExpr{col: col, raw: " IS NOT NULL"}
}

// In expands a single slice argument into one placeholder per element.
func In(col string, args ...any) Expr {
	return WhereExpr{executor: func(table string) (string, []any, error) {
		vals := args
		if len(args) == 1 && args[0] != nil {
			if rv := reflect.ValueOf(args[0]); rv.Kind() == reflect.Slice {
				if _, isBytes := args[0].([]byte); !isBytes {
					vals = make([]any, rv.Len())
					for i := range vals {
						vals[i] = rv.Index(i).Interface()
					}
				}
			}
		}

		if len(vals) == 0 {
			return "", nil, fmt.Errorf("IN on %s needs at least one value", col)
		}

		holders := strings.TrimSuffix(strings.Repeat("?, ", len(vals)), ", ")
		return Quote(table, col) + " IN (" + holders + ")", vals, nil
	}}
}

func Like(col string, val string) Expr {
	return WhereExpr{col: col, op: "LIKE", args: []any{"%" + val + "%"}}
}

func RLike(col string, val string) Expr {
	return WhereExpr{col: col, op: "LIKE", args: []any{val + "%"}}
}

func LLike(col string, val string) Expr {
	return WhereExpr{col: col, op: "LIKE", args: []any{"%" + val}}
}

func And(a ...Expr) Expr {
	return subExpr{typ: "AND", exprs: a}
}

func Or(a ...Expr) Expr {
	return subExpr{typ: "OR", exprs: a}
}

// Build joins the rendered expressions with typ, skipping ones that render
// empty. Arguments are returned in the same order as their placeholders.
func Build(table, typ string, a ...Expr) (string, []any, error) {
	var (
		parts = make([]string, 0, len(a))
		args  []any
	)

	for _, e := range a {
		out, exprArgs, err := e.Build(table)
		if err != nil {
			return "", nil, err
		}
		if out == "" {
			continue
		}

		parts = append(parts, out)
		args = append(args, exprArgs...)
	}

	return strings.Join(parts, " "+typ+" "), args, nil
}
