package tef

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"loov.dev/tracestats/trace"
)

// TimelineCategory is the category devtools uses for its own instrumentation.
const TimelineCategory = trace.TimelineCategory

// frameKey identifies a frame as seen from one thread.
type frameKey struct {
	ProcessID int64
	ThreadID  int64
	Frame     string
}

type frameCount struct {
	frameKey
	// frame as it appeared in the trace
	frame any
	count int
}

// Normalize collapses the TracingStartedIn* markers of a trace into a single
// TracingStartedInPage marker pointing at the most referenced frame.
//
// When several renderer frames or processes were captured, the trace carries
// one marker per frame and the timeline would pick whichever came first. The
// replacement marker uses the timestamp of the first original marker. Ties
// between equally referenced frames go to the frame seen first.
//
// The input is not modified. When no event refers to a frame, Normalize
// returns nil, since there is nothing to attribute.
func Normalize(events []Event) []Event {
	var markers []int
	var counts []*frameCount
	countByKey := make(map[frameKey]*frameCount)

	for i := range events {
		ev := &events[i]
		if ev.IsTracingStarted() {
			markers = append(markers, i)
		}

		frame, ok := ev.Frame()
		if !ok {
			continue
		}

		key := frameKey{
			ProcessID: ev.ProcessID,
			ThreadID:  ev.ThreadID,
			Frame:     fmt.Sprint(frame),
		}
		counter, ok := countByKey[key]
		if !ok {
			counter = &frameCount{frameKey: key, frame: frame}
			countByKey[key] = counter
			counts = append(counts, counter)
		}
		counter.count++
	}

	sort.SliceStable(counts, func(i, k int) bool {
		return counts[i].count > counts[k].count
	})

	var startedAt float64
	if len(markers) > 0 {
		startedAt = events[markers[0]].Timestamp
	}

	if len(counts) == 0 {
		log.Debugf("No event refers to a frame, dropping %d events", len(events))
		return nil
	}
	active := counts[0]

	normalized := make([]Event, 0, len(events)-len(markers)+1)
	normalized = append(normalized, tracingStartedInPage(active, startedAt))
	next := 0
	for i := range events {
		if next < len(markers) && markers[next] == i {
			next++
			continue
		}
		normalized = append(normalized, events[i])
	}

	log.Debugf("Collapsed %d tracing markers into frame %v (pid %d, tid %d, %d references)",
		len(markers), active.frame, active.ProcessID, active.ThreadID, active.count)

	return normalized
}

func tracingStartedInPage(active *frameCount, ts float64) Event {
	return Event{
		Name:      "TracingStartedInPage",
		Category:  TimelineCategory,
		Phase:     DeprecatedInstant,
		Timestamp: ts,
		ProcessID: active.ProcessID,
		ThreadID:  active.ThreadID,
		Scope:     ScopeThread,
		Args: map[string]any{
			"data": map[string]any{
				"page": active.frame,
			},
		},
	}
}
