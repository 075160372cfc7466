package stats

import (
	"loov.dev/tracestats/category"
	"loov.dev/tracestats/trace"
)

// Engine is the query surface of a timeline model.
type Engine interface {
	MainThreadTasks() []*trace.Event
	MainThreadEvents() []*trace.Event
	MinimumRecordTime() trace.Time
	MaximumRecordTime() trace.Time
}

// Statistics maps labels to milliseconds. Missing labels are zero.
type Statistics map[category.Label]float64

// Total sums every label except the derived ones.
func (s Statistics) Total() float64 {
	var total float64
	for label, ms := range s {
		if label == category.Idle || label == category.Busy {
			continue
		}
		total += ms
	}
	return total
}

// Aggregate attributes the own time of every top-level task on the main
// thread to the category of its name. Time spent in a nested task is
// charged to that task only.
func Aggregate(engine Engine, table *category.Table) Statistics {
	aggregated := Statistics{}
	if len(engine.MainThreadTasks()) == 0 {
		return aggregated
	}

	// own time of every open event, less the time of its children so far
	var ownTimes []trace.Time

	onStart := func(ev *trace.Event) {
		if n := len(ownTimes); n > 0 {
			ownTimes[n-1] -= ev.Duration()
		}
		ownTimes = append(ownTimes, ev.Duration())
	}

	onEnd := func(ev *trace.Event) {
		n := len(ownTimes)
		own := ownTimes[n-1]
		ownTimes = ownTimes[:n-1]

		label := table.Classify(ev.Name)
		aggregated[label] += own.Milliseconds()
	}

	trace.ForEachEvent(engine.MainThreadEvents(), onStart, onEnd, (*trace.Event).IsTopLevel)

	return aggregated
}
