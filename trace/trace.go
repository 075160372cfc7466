package trace

import (
	"math"
	"sort"
)

// Categories attached to events that the devtools timeline treats as the
// root units of work on a thread.
const (
	TopLevelCategory = "toplevel"
	TimelineCategory = "disabled-by-default-devtools.timeline"
)

type Timeline struct {
	Threads    []*Thread
	ThreadByID map[ThreadID]*Thread
	// Main is the renderer main thread, nil when the trace does not identify one.
	Main *Thread
	TimeRange
}

type ProcessID int64
type ThreadID struct {
	ProcessID ProcessID
	ThreadID  int64
}

func (id ThreadID) IsZero() bool { return id == ThreadID{} }

type Thread struct {
	ThreadID
	Name string
	TimeRange
	// Events in document order: sorted by start, enclosing events first.
	Events []*Event
}

type Event struct {
	Name       string
	Categories []string
	Phase      string
	TimeRange
	Args map[string]any

	Parent   *Event
	Children []*Event
}

type TimeRange struct {
	Start  Time
	Finish Time
}

var InvalidRange = TimeRange{
	Start:  math.MaxInt64,
	Finish: math.MinInt64,
}

func (a TimeRange) Duration() Time {
	return a.Finish - a.Start
}

func (a TimeRange) IsValid() bool {
	return a.Start <= a.Finish
}

func (a TimeRange) Less(b TimeRange) bool {
	if a.Start == b.Start {
		// enclosing ranges come first
		return a.Finish > b.Finish
	}
	return a.Start < b.Start
}

func (a TimeRange) Contains(b TimeRange) bool {
	return a.Start <= b.Start && b.Finish <= a.Finish
}

func (a TimeRange) Expand(b TimeRange) TimeRange {
	return TimeRange{
		Start:  a.Start.Min(b.Start),
		Finish: a.Finish.Max(b.Finish),
	}
}

func (e *Event) HasCategory(cat string) bool {
	for _, c := range e.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// IsTopLevel reports whether the event is a top-level task. Older timelines
// mark those as "Program" instead of tagging them toplevel.
func (e *Event) IsTopLevel() bool {
	return e.HasCategory(TopLevelCategory) ||
		e.HasCategory(TimelineCategory) && e.Name == "Program"
}

func (timeline *Timeline) MainThreadEvents() []*Event {
	if timeline.Main == nil {
		return nil
	}
	return timeline.Main.Events
}

// MainThreadTasks returns the top-level tasks of the main thread, including
// those nested in other events.
func (timeline *Timeline) MainThreadTasks() []*Event {
	var tasks []*Event
	for _, ev := range timeline.MainThreadEvents() {
		if ev.IsTopLevel() {
			tasks = append(tasks, ev)
		}
	}
	return tasks
}

func (timeline *Timeline) MinimumRecordTime() Time {
	if !timeline.TimeRange.IsValid() {
		return 0
	}
	return timeline.Start
}

func (timeline *Timeline) MaximumRecordTime() Time {
	if !timeline.TimeRange.IsValid() {
		return 0
	}
	return timeline.Finish
}

func (timeline *Timeline) Sort() {
	sort.SliceStable(timeline.Threads, func(i, k int) bool {
		a := timeline.Threads[i]
		b := timeline.Threads[k]
		if a.Start == b.Start {
			return lessThreadID(a.ThreadID, b.ThreadID)
		}
		return a.Start < b.Start
	})

	for _, t := range timeline.Threads {
		sort.SliceStable(t.Events, func(i, k int) bool {
			a := t.Events[i]
			b := t.Events[k]
			return a.TimeRange.Less(b.TimeRange)
		})
	}
}

func lessThreadID(a, b ThreadID) bool {
	if a.ProcessID == b.ProcessID {
		return a.ThreadID < b.ThreadID
	}
	return a.ProcessID < b.ProcessID
}

// Nest links every event of the thread to its closest enclosing event.
// Events must already be sorted.
func (t *Thread) Nest() {
	var stack []*Event
	for _, ev := range t.Events {
		ev.Parent, ev.Children = nil, nil
		for len(stack) > 0 && !stack[len(stack)-1].Contains(ev.TimeRange) {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			ev.Parent = parent
			parent.Children = append(parent.Children, ev)
		}
		if ev.Duration() > 0 {
			stack = append(stack, ev)
		}
	}
}

// ForEachEvent walks events in document order. onStart is called when an
// accepted event with a non-zero duration opens and onEnd once every event
// started after it has ended. Events rejected by filter are skipped, their
// descendants are still visited. filter may be nil.
func ForEachEvent(events []*Event, onStart, onEnd func(*Event), filter func(*Event) bool) {
	var stack []*Event
	for _, ev := range events {
		for len(stack) > 0 && stack[len(stack)-1].Finish <= ev.Start {
			onEnd(stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
		if filter != nil && !filter(ev) {
			continue
		}
		if ev.Duration() <= 0 {
			continue
		}
		onStart(ev)
		stack = append(stack, ev)
	}
	for len(stack) > 0 {
		onEnd(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
	}
}
