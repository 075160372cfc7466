package tef

import (
	"fmt"

	"loov.dev/tracestats/trace"
)

// MainThreadName is the thread name Chrome gives to renderer main threads.
const MainThreadName = "CrRendererMain"

// Convert builds the timeline model of a trace.
//
// The main thread is the thread of the first TracingStartedIn* marker, or
// failing that the first thread named CrRendererMain.
func Convert(events ...Event) (*trace.Timeline, error) {
	var timeline trace.Timeline

	timeline.ThreadByID = make(map[trace.ThreadID]*trace.Thread)
	timeline.TimeRange = trace.InvalidRange

	ensure := func(ev *Event) *trace.Thread {
		id := trace.ThreadID{
			ProcessID: trace.ProcessID(ev.ProcessID),
			ThreadID:  ev.ThreadID,
		}
		thread, ok := timeline.ThreadByID[id]
		if !ok {
			thread = &trace.Thread{
				ThreadID:  id,
				TimeRange: trace.InvalidRange,
			}
			timeline.ThreadByID[id] = thread
			timeline.Threads = append(timeline.Threads, thread)
		}
		return thread
	}

	expand := func(thread *trace.Thread, span trace.TimeRange) {
		thread.TimeRange = thread.TimeRange.Expand(span)
		timeline.TimeRange = timeline.TimeRange.Expand(span)
	}

	add := func(thread *trace.Thread, node *trace.Event) {
		thread.Events = append(thread.Events, node)
		expand(thread, node.TimeRange)
	}

	open := make(map[*trace.Thread][]*trace.Event)
	var main *trace.Thread

	for i := range events {
		ev := &events[i]
		if ev.Phase == "" {
			return nil, Error.Errorf("%s: missing phase", describe(ev))
		}

		thread := ensure(ev)
		if main == nil && ev.IsTracingStarted() {
			main = thread
		}

		start := trace.Microseconds(ev.Timestamp)
		switch ev.Phase {
		case Metadata:
			if ev.Name == "thread_name" {
				if name, ok := ev.Args["name"].(string); ok {
					thread.Name = name
				}
			}

		case Complete:
			if ev.Duration < 0 {
				return nil, Error.Errorf("%s: negative duration %v", describe(ev), ev.Duration)
			}
			node := newEvent(ev)
			node.TimeRange = trace.TimeRange{
				Start:  start,
				Finish: trace.Microseconds(ev.Timestamp + ev.Duration),
			}
			add(thread, node)

		case DurationBegin:
			node := newEvent(ev)
			node.TimeRange = trace.TimeRange{Start: start, Finish: start}
			open[thread] = append(open[thread], node)
			expand(thread, node.TimeRange)

		case DurationEnd:
			stack := open[thread]
			if len(stack) == 0 {
				// the matching begin happened before tracing started
				expand(thread, trace.TimeRange{Start: start, Finish: start})
				continue
			}
			node := stack[len(stack)-1]
			open[thread] = stack[:len(stack)-1]
			if start < node.Start {
				return nil, Error.Errorf("%s: ends before its begin at %v", describe(ev), node.Start.Std())
			}
			node.Finish = start
			if len(ev.Args) > 0 {
				args := make(map[string]any, len(node.Args)+len(ev.Args))
				for k, v := range node.Args {
					args[k] = v
				}
				for k, v := range ev.Args {
					args[k] = v
				}
				node.Args = args
			}
			add(thread, node)

		case Instant, DeprecatedInstant, Mark:
			node := newEvent(ev)
			node.TimeRange = trace.TimeRange{Start: start, Finish: start}
			add(thread, node)

		default:
			expand(thread, trace.TimeRange{Start: start, Finish: start})
		}
	}

	// unfinished events run until the end of the trace
	for thread, stack := range open {
		for _, node := range stack {
			node.Finish = node.Start.Max(timeline.Finish)
			add(thread, node)
		}
	}

	if main == nil {
		for _, thread := range timeline.Threads {
			if thread.Name == MainThreadName {
				main = thread
				break
			}
		}
	}
	timeline.Main = main

	timeline.Sort()
	for _, thread := range timeline.Threads {
		thread.Nest()
	}

	return &timeline, nil
}

// describe identifies an event in errors by where it sits in the trace,
// since positions shift once the trace is normalized.
func describe(ev *Event) string {
	return fmt.Sprintf("event %q at %vus (pid %d, tid %d)", ev.Name, ev.Timestamp, ev.ProcessID, ev.ThreadID)
}

func newEvent(ev *Event) *trace.Event {
	return &trace.Event{
		Name:       ev.Name,
		Categories: ev.Categories(),
		Phase:      string(ev.Phase),
		Args:       ev.Args,
	}
}
