package sqlbuilder

import (
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type Builder struct {
	logger *zap.Logger

	table, alias string

	cols  []string
	exprs map[string]string

	joins   []string
	wheres  []string
	havings []string

	groups []string
	orders []string

	limit, offset *int

	params map[Scope]*Params

	err error
}

type Option func(*Builder)

// WithLogger sets the logger used for rendered statements and precondition
// failures. A nil logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b.Reset()
}

// Reset drops everything accumulated so far, including a recorded error.
func (b *Builder) Reset() *Builder {
	b.table, b.alias = "", ""

	b.cols = []string{}
	b.exprs = map[string]string{}

	b.joins = []string{}
	b.wheres = []string{}
	b.havings = []string{}

	b.groups = []string{}
	b.orders = []string{}

	b.limit, b.offset = nil, nil

	b.params = map[Scope]*Params{}

	b.err = nil

	return b
}

// Clone returns a deep copy that shares no state with b.
func (b *Builder) Clone() *Builder {
	c := &Builder{
		logger: b.logger,
		table:  b.table,
		alias:  b.alias,

		cols:  append([]string{}, b.cols...),
		exprs: lo.Assign(b.exprs),

		joins:   append([]string{}, b.joins...),
		wheres:  append([]string{}, b.wheres...),
		havings: append([]string{}, b.havings...),

		groups: append([]string{}, b.groups...),
		orders: append([]string{}, b.orders...),

		params: make(map[Scope]*Params, len(b.params)),

		err: b.err,
	}

	if b.limit != nil {
		c.limit = lo.ToPtr(*b.limit)
	}
	if b.offset != nil {
		c.offset = lo.ToPtr(*b.offset)
	}

	for scope, p := range b.params {
		cp := p.clone()
		c.params[scope] = &cp
	}

	return c
}

// Err reports the first precondition failure recorded by an accumulation call.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) log() *zap.Logger {
	if b.logger == nil {
		return zap.NewNop()
	}
	return b.logger
}

func (b *Builder) fail(err error) *Builder {
	b.log().Debug("precondition failed", zap.Error(err))
	if b.err == nil {
		b.err = err
	}
	return b
}
