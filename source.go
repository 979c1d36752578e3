package sqlbuilder

import "errors"

// Source is something a query can select from or join against: either a
// Table or another *Builder, which is embedded as a sub-query.
type Source interface {
	source() (text, types string, values []any, err error)
	subquery() bool
}

// Table is a table name or any other raw FROM/JOIN text. It is emitted as is.
type Table string

func (t Table) source() (string, string, []any, error) {
	return string(t), "", nil, nil
}

func (Table) subquery() bool {
	return false
}

// source renders b right away. The parent keeps the text and values it gets
// here, so changes made to b afterwards never reach the parent.
func (b *Builder) source() (string, string, []any, error) {
	if b == nil {
		return "", "", nil, errors.New("nil sub-query")
	}

	sq, err := b.Render()
	if err != nil {
		return "", "", nil, err
	}

	types, values := b.FlattenParams()
	return " ( " + sq + " ) ", types, values, nil
}

func (*Builder) subquery() bool {
	return true
}

// embed resolves src for op, recording a failure on b when it cannot be used.
func (b *Builder) embed(op string, src Source, alias string) (text, types string, values []any, ok bool) {
	if src == nil {
		b.fail(&PreconditionError{Op: op, Msg: "missing source"})
		return "", "", nil, false
	}

	if src.subquery() && alias == "" {
		b.fail(&PreconditionError{Op: op, Msg: "sub-query requires an alias"})
		return "", "", nil, false
	}

	text, types, values, err := src.source()
	if err != nil {
		b.fail(&PreconditionError{Op: op, Msg: "sub-query " + alias + ": " + err.Error(), Underlying: err})
		return "", "", nil, false
	}

	return text, types, values, true
}
