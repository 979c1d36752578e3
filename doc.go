// Package sqlbuilder assembles SELECT statements from raw SQL fragments and
// keeps their bound values in placeholder order.
//
//	sub := sqlbuilder.New().
//		From(sqlbuilder.Table("fact.`order`"), "f").
//		Where("f.enddate between ? and ?", "ss", begin, end)
//
//	q := sqlbuilder.New().
//		From(sub, "base").
//		Select("focus").
//		SelectAs("cnt", "count(*)").
//		Where("1 = ?", "i", 1).
//		GroupBy("base.focus").
//		Having("cnt > ?", "i", 2)
//
//	sql, err := q.Render()
//	bind := q.BindParameters() // "ssii", begin, end, 1, 2
//
// A builder used as a source is rendered when it is passed to From or Join,
// so later changes to it are not seen by the enclosing query. Values are
// bound in clause order: FROM, JOIN, WHERE, HAVING.
//
// Fragments are not parsed or escaped. Untrusted input belongs in the bound
// values, never in the SQL text.
package sqlbuilder
