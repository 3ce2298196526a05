package errors

import "strings"

// Aggregate carries the full set of independent failures from one
// translation pass. It renders one failure per line so a user sees every
// invalid target, invalid source, and empty-glob condition in a single run.
type Aggregate struct {
	errs []error
}

// Error implements the error interface
func (a *Aggregate) Error() string {
	lines := make([]string, len(a.errs))
	for i, err := range a.errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the collected errors to errors.Is/errors.As.
func (a *Aggregate) Unwrap() []error {
	return a.errs
}

// Errors returns the collected errors in push order.
func (a *Aggregate) Errors() []error {
	return a.errs
}

// Len returns the number of collected errors.
func (a *Aggregate) Len() int {
	return len(a.errs)
}

// Collector accumulates failures across a batch of otherwise-independent
// operations. It is passed into nested loops (the target loop containing a
// source loop) so that every level pushes into the same accumulator; an
// error in one item never prevents the remaining items from being evaluated.
type Collector struct {
	errs []error
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Push records a failure. A nil error is ignored; an *Aggregate is
// flattened so nested collectors do not produce aggregates of aggregates.
func (c *Collector) Push(err error) {
	if err == nil {
		return
	}
	var agg *Aggregate
	if As(err, &agg) {
		c.errs = append(c.errs, agg.errs...)
		return
	}
	c.errs = append(c.errs, err)
}

// HasErrors reports whether any failure was pushed.
func (c *Collector) HasErrors() bool {
	return len(c.errs) > 0
}

// Len returns the number of failures pushed so far.
func (c *Collector) Len() int {
	return len(c.errs)
}

// Err returns nil if nothing was pushed, the single error if exactly one
// was pushed, and an *Aggregate otherwise.
func (c *Collector) Err() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	default:
		return &Aggregate{errs: c.errs}
	}
}
