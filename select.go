package sqlbuilder

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/maxshaw/sqlbuilder/qb"
)

// From sets the table to select from. Setting it again replaces the table
// together with any values bound by a previous sub-query table.
func (b *Builder) From(src Source, alias string) *Builder {
	text, types, values, ok := b.embed("from", src, alias)
	if !ok {
		return b
	}

	b.table, b.alias = text, alias

	delete(b.params, ScopeTable)
	b.addParam(ScopeTable, types, values)

	return b
}

// Select adds expressions that are returned under their own text.
func (b *Builder) Select(exprs ...string) *Builder {
	for _, expr := range exprs {
		b.selectAs(expr, expr)
	}
	return b
}

// SelectAs adds expr under alias. Reusing an alias replaces its expression
// but keeps its position.
func (b *Builder) SelectAs(alias, expr string) *Builder {
	b.selectAs(alias, expr)
	return b
}

func (b *Builder) selectAs(alias, expr string) {
	if _, ok := b.exprs[alias]; !ok {
		b.cols = append(b.cols, alias)
	}
	b.exprs[alias] = expr
}

func (b *Builder) Join(src Source, alias, on string) *Builder {
	return b.JoinType("", src, alias, on)
}

func (b *Builder) InnerJoin(src Source, alias, on string) *Builder {
	return b.JoinType("INNER", src, alias, on)
}

func (b *Builder) LeftJoin(src Source, alias, on string) *Builder {
	return b.JoinType("LEFT", src, alias, on)
}

func (b *Builder) RightJoin(src Source, alias, on string) *Builder {
	return b.JoinType("RIGHT", src, alias, on)
}

func (b *Builder) OuterJoin(src Source, alias, on string) *Builder {
	return b.JoinType("OUTER", src, alias, on)
}

// JoinType appends a join of the given type. An empty typ renders a bare
// JOIN, and an empty on omits the ON clause.
func (b *Builder) JoinType(typ string, src Source, alias, on string) *Builder {
	text, types, values, ok := b.embed("join", src, alias)
	if !ok {
		return b
	}

	var sb strings.Builder

	sb.WriteString(" ")
	sb.WriteString(typ)
	sb.WriteString(" JOIN ")
	sb.WriteString(text)

	if alias != "" {
		sb.WriteString(" ")
		sb.WriteString(alias)
	}

	if on != "" {
		sb.WriteString(" ON ")
		sb.WriteString(on)
	}

	b.joins = append(b.joins, sb.String())
	b.addParam(ScopeJoin, types, values)

	return b
}

// Where adds a predicate, ANDed with the others. types carries one tag per
// value, e.g. Where("d.date between ? and ?", "ss", begin, end).
func (b *Builder) Where(expr, types string, values ...any) *Builder {
	if err := checkParams("where", types, values); err != nil {
		return b.fail(err)
	}

	b.wheres = append(b.wheres, expr)
	b.addParam(ScopeWhere, types, values)

	return b
}

// WhereExpr adds the ANDed expressions as a single predicate, with column
// names qualified by the table alias and type tags taken from the values.
func (b *Builder) WhereExpr(exprs ...qb.Expr) *Builder {
	cond, args, err := qb.Build(b.alias, "AND", exprs...)
	if err != nil {
		return b.fail(&PreconditionError{Op: "where", Msg: err.Error(), Underlying: err})
	}
	if cond == "" {
		return b
	}
	return b.Where(cond, qb.Tags(args), args...)
}

func (b *Builder) Having(expr, types string, values ...any) *Builder {
	if err := checkParams("having", types, values); err != nil {
		return b.fail(err)
	}

	b.havings = append(b.havings, expr)
	b.addParam(ScopeHaving, types, values)

	return b
}

func (b *Builder) HavingExpr(exprs ...qb.Expr) *Builder {
	cond, args, err := qb.Build(b.alias, "AND", exprs...)
	if err != nil {
		return b.fail(&PreconditionError{Op: "having", Msg: err.Error(), Underlying: err})
	}
	if cond == "" {
		return b
	}
	return b.Having(cond, qb.Tags(args), args...)
}

func (b *Builder) GroupBy(cols ...string) *Builder {
	b.groups = append(b.groups, cols...)
	return b
}

func (b *Builder) GroupByAll(cols []string) *Builder {
	return b.GroupBy(cols...)
}

// OrderBy appends raw order expressions such as "month desc".
func (b *Builder) OrderBy(cols ...string) *Builder {
	b.orders = append(b.orders, cols...)
	return b
}

func (b *Builder) OrderByAll(cols []string) *Builder {
	return b.OrderBy(cols...)
}

func (b *Builder) Sort(col string, sortBy qb.SortBy) *Builder {
	return b.OrderBy(col + " " + sortBy.String())
}

func (b *Builder) Limit(a int) *Builder {
	b.limit = lo.ToPtr(a)
	return b
}

func (b *Builder) Offset(a int) *Builder {
	b.offset = lo.ToPtr(a)
	return b
}

// ReturnColumnNames lists the selected aliases in the order the columns come
// back from the rendered statement.
func (b *Builder) ReturnColumnNames() []string {
	return append([]string{}, b.cols...)
}

func (b *Builder) selectList() string {
	return strings.Join(lo.Map(b.cols, func(alias string, _ int) string {
		expr := b.exprs[alias]
		if expr == alias {
			return expr
		}
		return expr + "  AS " + alias
	}), ", ")
}

// Render returns the statement text. It fails only when an earlier call
// recorded a precondition error.
func (b *Builder) Render() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	var sb strings.Builder

	sb.WriteString("SELECT ")
	sb.WriteString(b.selectList())
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	if b.alias != "" {
		sb.WriteString(" ")
		sb.WriteString(b.alias)
	}

	for _, join := range b.joins {
		sb.WriteString(join)
	}

	if len(b.wheres) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.wheres, " AND "))
	}

	if len(b.groups) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groups, ","))
	}

	if len(b.havings) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(strings.Join(b.havings, " AND "))
	}

	if len(b.orders) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orders, ","))
	}

	if b.limit != nil {
		sb.WriteString(" LIMIT ")

		if b.offset != nil {
			sb.WriteString(strconv.Itoa(*b.offset))
			sb.WriteString(" , ")
		}

		sb.WriteString(strconv.Itoa(*b.limit))
	}

	return sb.String(), nil
}

// ToSQL returns the statement and its values in bind order, ready for
// database/sql's Query(query, args...).
func (b *Builder) ToSQL() (string, []any, error) {
	sq, err := b.Render()
	if err != nil {
		return "", nil, err
	}

	_, args := b.FlattenParams()

	b.log().Debug("rendered select", zap.String("sql", sq), zap.Any("params", args))

	return sq, args, nil
}
