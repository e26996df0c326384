package tableau

import "go.uber.org/zap"

type options struct {
	maxNodes int
	maxSteps int
	ties     TieOrder
	logger   *zap.Logger
	priority any
}

// Option configures a Tableau.
type Option func(*options)

// WithMaxNodes stops the search with ErrSearchExhausted once the arena holds
// n nodes. Zero disables the limit.
func WithMaxNodes(n int) Option {
	return func(o *options) { o.maxNodes = n }
}

// WithMaxSteps stops the search with ErrSearchExhausted after n expansion
// steps. Zero disables the limit.
func WithMaxSteps(n int) Option {
	return func(o *options) { o.maxSteps = n }
}

// WithTieOrder sets how pending nodes of equal priority are ordered.
func WithTieOrder(ties TieOrder) Option {
	return func(o *options) { o.ties = ties }
}

// WithLogger sets the logger used for expansion traces.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPriority replaces the logic's priority function. f must take the
// tableau's node type.
func WithPriority[N any](f func(N) int) Option {
	return func(o *options) { o.priority = f }
}
