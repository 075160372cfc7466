// Package stats summarizes where the main thread of a Chrome trace spent
// its time.
package stats

import (
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/zeebo/errs/v2"

	"loov.dev/tracestats/category"
	"loov.dev/tracestats/import/tef"
)

// Error tags errors returned by Compute.
var Error = errs.Tag("stats")

// TraceCategories are the categories that must be enabled when capturing a
// trace for Compute.
var TraceCategories = []string{
	"-*",
	"devtools.timeline",
	"v8.execute",
	"disabled-by-default-devtools.timeline",
	"disabled-by-default-devtools.timeline.frame",
	"toplevel",
	"blink.console",
	"latencyInfo",
	"disabled-by-default-devtools.timeline.stack",
}

type options struct {
	table *category.Table
}

type Option func(*options)

// WithTable classifies events with table instead of category.Default.
func WithTable(table *category.Table) Option {
	return func(o *options) { o.table = table }
}

// Compute returns the time spent per category over the span of the trace,
// together with the derived busy and idle totals.
//
// A trace without any main thread task yields an empty result.
func Compute(events []tef.Event, opts ...Option) (Statistics, error) {
	o := options{table: category.Default}
	for _, opt := range opts {
		opt(&o)
	}

	timeline, err := tef.Convert(tef.Normalize(events)...)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	if len(timeline.MainThreadTasks()) == 0 {
		log.Debugf("No main thread tasks in %d events", len(events))
		return Statistics{}, nil
	}

	return Assemble(timeline, o.table), nil
}

// Assemble aggregates the tasks of engine and derives idle and busy time.
func Assemble(engine Engine, table *category.Table) Statistics {
	aggregated := Aggregate(engine, table)
	total := aggregated.Total()

	span := (engine.MaximumRecordTime() - engine.MinimumRecordTime()).Milliseconds()
	aggregated[category.Busy] = total
	aggregated[category.Idle] = math.Max(0, span-total)

	log.Debugf("Trace span %.3fms, busy %.3fms", span, total)
	return aggregated
}
