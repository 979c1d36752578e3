package sqlbuilder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/maxshaw/sqlbuilder/qb"
)

func TestNew(t *testing.T) {
	b := New()
	require.NotNil(t, b)
	assert.NotNil(t, b.logger)
	assert.Empty(t, b.cols)
	assert.Empty(t, b.joins)
	assert.Empty(t, b.params)
	assert.Nil(t, b.limit)
	assert.Nil(t, b.offset)
	assert.NoError(t, b.Err())

	types, values := b.FlattenParams()
	assert.Equal(t, "", types)
	assert.Empty(t, values)
	assert.Equal(t, []any{""}, b.BindParameters())

	sq, err := b.Render()
	require.NoError(t, err)
	assert.Equal(t, "SELECT  FROM ", sq)
}

func TestBuilder_Clone(t *testing.T) {
	b := New().
		From(Table("t"), "x").
		Select("a").
		Where("a = ?", "i", 1).
		Limit(10)

	clone := b.Clone()
	original, err := b.Render()
	require.NoError(t, err)
	cloned, err := clone.Render()
	require.NoError(t, err)
	assert.Equal(t, original, cloned)

	clone.Select("b").Where("b = ?", "s", "x").Limit(20).Offset(5).SelectAs("a", "a + 1")

	sq, err := b.Render()
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t x WHERE a = ? LIMIT 10", sq)
	assert.Equal(t, []any{"i", 1}, b.BindParameters())

	sq, err = clone.Render()
	require.NoError(t, err)
	assert.Equal(t, "SELECT a + 1  AS a, b FROM t x WHERE a = ? AND b = ? LIMIT 5 , 20", sq)
	assert.Equal(t, []any{"is", 1, "x"}, clone.BindParameters())
}

func TestBuilder_Reset(t *testing.T) {
	b := New().
		From(Table("t"), "x").
		Select("a").
		Where("a = ?", "ii", 1)
	require.Error(t, b.Err())

	b.Reset()
	assert.NoError(t, b.Err())
	assert.Empty(t, b.ReturnColumnNames())

	sq, err := b.From(Table("u"), "").Select("c").Render()
	require.NoError(t, err)
	assert.Equal(t, "SELECT c FROM u", sq)
}

func TestBuilder_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		buildFn func(*Builder) *Builder
		op      string
	}{
		{
			name: "sub-query table without alias",
			buildFn: func(b *Builder) *Builder {
				return b.From(New().From(Table("s"), "").Select("id"), "")
			},
			op: "from",
		},
		{
			name: "sub-query join without alias",
			buildFn: func(b *Builder) *Builder {
				return b.Join(New().From(Table("s"), "").Select("id"), "", "true")
			},
			op: "join",
		},
		{
			name: "nil sub-query",
			buildFn: func(b *Builder) *Builder {
				var sub *Builder
				return b.Join(sub, "s", "")
			},
			op: "join",
		},
		{
			name: "missing source",
			buildFn: func(b *Builder) *Builder {
				return b.From(nil, "s")
			},
			op: "from",
		},
		{
			name: "where with more tags than values",
			buildFn: func(b *Builder) *Builder {
				return b.Where("a = ?", "ss", 1)
			},
			op: "where",
		},
		{
			name: "where with values but no tags",
			buildFn: func(b *Builder) *Builder {
				return b.Where("a = ?", "", 1)
			},
			op: "where",
		},
		{
			name: "having with fewer tags than values",
			buildFn: func(b *Builder) *Builder {
				return b.Having("a between ? and ?", "i", 1, 2)
			},
			op: "having",
		},
		{
			name: "empty IN expression",
			buildFn: func(b *Builder) *Builder {
				return b.WhereExpr(qb.In("id"))
			},
			op: "where",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New().From(Table("t"), "x").Select("a").Where("a = ?", "i", 1)
			before, err := b.Render()
			require.NoError(t, err)
			beforeTypes, beforeValues := b.FlattenParams()

			tt.buildFn(b)

			var perr *PreconditionError
			require.ErrorAs(t, b.Err(), &perr)
			assert.Equal(t, tt.op, perr.Op)

			_, err = b.Render()
			assert.ErrorIs(t, err, perr)
			_, _, err = b.ToSQL()
			assert.ErrorIs(t, err, perr)

			// The failing call must not have touched the builder.
			b.err = nil
			after, err := b.Render()
			require.NoError(t, err)
			afterTypes, afterValues := b.FlattenParams()
			assert.Equal(t, before, after)
			assert.Equal(t, beforeTypes, afterTypes)
			assert.Equal(t, beforeValues, afterValues)
		})
	}
}

func TestBuilder_FirstErrorKept(t *testing.T) {
	b := New().Where("a = ?", "ss", 1).Having("b = ?", "", 2)

	var perr *PreconditionError
	require.ErrorAs(t, b.Err(), &perr)
	assert.Equal(t, "where", perr.Op)
	assert.Equal(t, "where: 2 type tags for 1 values", perr.Error())
}

func TestBuilder_SubQueryErrorPropagates(t *testing.T) {
	child := New().From(Table("s"), "").Where("a = ?", "i")
	require.Error(t, child.Err())

	parent := New().From(child, "c")

	var perr *PreconditionError
	require.ErrorAs(t, parent.Err(), &perr)
	assert.Equal(t, "from", perr.Op)
	assert.True(t, errors.Is(parent.Err(), child.Err()))
}

func TestBuilder_ScopeParams(t *testing.T) {
	sub := New().From(Table("s"), "").Where("a = ? and b = ?", "is", 1, "b")

	b := New().
		From(sub, "x").
		Join(sub, "y", "x.a = y.a").
		Where("c = ?", "d", 2.5)

	assert.Equal(t, Params{Types: "is", Values: []any{1, "b"}}, b.ScopeParams(ScopeTable))
	assert.Equal(t, Params{Types: "is", Values: []any{1, "b"}}, b.ScopeParams(ScopeJoin))
	assert.Equal(t, Params{Types: "d", Values: []any{2.5}}, b.ScopeParams(ScopeWhere))
	assert.Equal(t, Params{Values: []any{}}, b.ScopeParams(ScopeHaving))

	// Replacing the table drops the values of the previous sub-query.
	b.From(Table("plain"), "x")
	assert.Equal(t, Params{Values: []any{}}, b.ScopeParams(ScopeTable))
	assert.Equal(t, []any{"isd", 1, "b", 2.5}, b.BindParameters())
}

func TestScope_String(t *testing.T) {
	assert.Equal(t, "table", ScopeTable.String())
	assert.Equal(t, "join", ScopeJoin.String())
	assert.Equal(t, "where", ScopeWhere.String())
	assert.Equal(t, "having", ScopeHaving.String())
	assert.Equal(t, "Scope(9)", Scope(9).String())
}

func TestBuilder_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(WithLogger(zap.New(core))).From(Table("t"), "").Select("a").Where("a = ?", "i", 1)

	sq, _, err := b.ToSQL()
	require.NoError(t, err)

	rendered := logs.FilterMessage("rendered select").All()
	require.Len(t, rendered, 1)
	assert.Equal(t, sq, rendered[0].ContextMap()["sql"])

	b.Where("b = ?", "ii", 2)
	assert.Equal(t, 1, logs.FilterMessage("precondition failed").Len())

	// Render alone does not log.
	_, _ = New(WithLogger(zap.New(core))).Render()
	assert.Equal(t, 1, logs.FilterMessage("rendered select").Len())
}

func TestWithLoggerNil(t *testing.T) {
	b := New(WithLogger(nil))
	require.NotNil(t, b.logger)

	_, _, err := b.From(Table("t"), "").Select("a").ToSQL()
	assert.NoError(t, err)
}
