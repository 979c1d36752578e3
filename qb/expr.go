package qb

import (
	"strings"

	"github.com/samber/lo"
)

// Expr renders a predicate against an optional table qualifier. The returned
// arguments line up with the `?` placeholders in the returned text.
type Expr interface {
	Build(table string) (string, []any, error)
}

type WhereExpr struct {
	col     string
	args    []any
	op, raw string

	executor func(table string) (string, []any, error)
}

func (w WhereExpr) String() string {
	return w.raw
}

func (w WhereExpr) Build(table string) (cond string, args []any, err error) {
	if w.executor != nil {
		return w.executor(table)
	}

	if w.col != "" {
		col := Quote(table, w.col)
		if w.raw == "" {
			return col + " " + w.op + " ?", w.args, nil
		}
		return col + w.raw, w.args, nil
	}

	return w.raw, w.args, nil
}

type subExpr struct {
	typ   string
	exprs []Expr
}

func (e subExpr) Build(table string) (string, []any, error) {
	cond, args, err := Build(table, e.typ, e.exprs...)
	if err != nil || cond == "" {
		return cond, args, err
	}
	if len(e.exprs) > 1 {
		cond = "(" + cond + ")"
	}
	return cond, args, nil
}

// Quote wraps col in backticks, qualified by table when table is set. A
// dotted col is treated as already qualified and each part is quoted on its own.
func Quote(table, col string) string {
	if strings.Contains(col, ".") {
		parts := lo.Map(strings.Split(col, "."), func(p string, _ int) string {
			return "`" + strings.Trim(p, "`") + "`"
		})
		return strings.Join(parts, ".")
	}

	if table == "" {
		return "`" + strings.Trim(col, "`") + "`"
	}

	return "`" + strings.Trim(table, "`") + "`.`" + strings.Trim(col, "`") + "`"
}

type SortBy int

const (
	Ascend SortBy = iota
	Descend
)

func (s SortBy) String() string {
	if s == Descend {
		return "DESC"
	}
	return "ASC"
}
