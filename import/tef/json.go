package tef

// This package implements
// https://docs.google.com/document/d/1CvAClvFfyA5R-PhYUmn5OOQtYMH4h6I0nSsKchNAySU/preview?tab=t.0#heading=h.yr4qxyxotyw

/*
{
  "traceEvents": [
    {"name": "Asub", "cat": "PERF", "ph": "B", "pid": 22630, "tid": 22630, "ts": 829},
    {"name": "Asub", "cat": "PERF", "ph": "E", "pid": 22630, "tid": 22630, "ts": 833}
  ],
  "displayTimeUnit": "ns",
  "otherData": {
    "version": "My Application v1.0"
  },
  "stackFrames": {...}
  "samples": [...],
}
*/

type File struct {
	TraceEvents []Event `json:"traceEvents"`
	// If provided displayTimeUnit is a string that specifies in which unit timestamps should be displayed.
	// This supports values of “ms” or “ns”. By default this is value is “ms”.
	DisplayTimeUnit string `json:"displayTimeUnit,omitempty"`
	// If provided, the stackFrames field is a dictionary of stack frames, their ids,
	// and their parents that allows compact representation of stack traces throughout
	// the rest of the trace file.
	StackFrames map[string]StackFrame `json:"stackFrames,omitempty"`
	// The samples array is used to store sampling profiler data from a OS level profiler.
	Samples []Sample `json:"samples,omitempty"`
	// Any other properties seen in the object, in this case otherData are assumed to be metadata for the trace.
	OtherData map[string]any `json:"otherData,omitempty"`
	// Chrome DevTools exports its own metadata block next to the events.
	Metadata map[string]any `json:"metadata,omitempty"`
}

/*
{
  "name": "myName",
  "cat": "category,list",
  "ph": "B",
  "ts": 12345,
  "pid": 123,
  "tid": 456,
  "args": {
    "someArg": 1,
    "anotherArg": {
      "value": "my value"
    }
  }
}
*/

type Event struct {
	// ID is a unique identifier for async events, either a string or a number.
	ID any `json:"id,omitempty"`
	// The name of the event, as displayed in Trace Viewer
	Name string `json:"name"`
	// The event categories. This is a comma separated list of categories for the event.
	Category string `json:"cat"`
	// The event type. This is a single character which changes depending on the type of
	// event being output.
	Phase Phase `json:"ph"`
	// The tracing clock timestamp of the event, in microseconds.
	// Chrome writes fractional microseconds.
	Timestamp float64 `json:"ts"`
	// Optional. The thread clock timestamp of the event, in microseconds.
	ThreadTimestamp float64 `json:"tts,omitempty"`
	// The process ID for the process that output this event.
	ProcessID int64 `json:"pid"`
	// The thread ID for the thread that output this event.
	ThreadID int64 `json:"tid"`
	// Scope of an instant event: "g" global, "p" process or "t" thread.
	Scope string `json:"s,omitempty"`

	// StackFrame is a reference to StackFrames map, written either as a
	// string or as a number.
	StackFrame any `json:"sf,omitempty"`
	// Stack can be used instead of StackFrame to provide raw frames.
	Stack []string `json:"stack,omitempty"`

	// Any arguments provided for the event. Chrome nests most of its payload
	// under "data", "beginData" or "counters".
	Args map[string]any `json:"args,omitempty"`

	// Duration specifies the duration for Complete events, in microseconds.
	Duration float64 `json:"dur,omitempty"`
	// ThreadDuration is the thread clock duration for Complete events.
	ThreadDuration float64 `json:"tdur,omitempty"`
	// EndStackFrame is a reference to StackFrames map. Only relevant to Complete event.
	EndStackFrame any `json:"esf,omitempty"`
}

type Phase string

const (
	DurationBegin Phase = "B"
	DurationEnd   Phase = "E"
	Complete      Phase = "X"
	Instant       Phase = "i"
	Counter       Phase = "C"

	// DeprecatedInstant is still emitted by Chrome for the tracing start markers.
	DeprecatedInstant Phase = "I"

	AsyncStart   Phase = "b"
	AsyncInstant Phase = "n"
	AsyncEnd     Phase = "e"

	DeprecatedAsyncStart    Phase = "S"
	DeprecatedAsyncStepInto Phase = "T"
	DeprecatedAsyncPast     Phase = "p"
	DeprecatedAsyncEnd      Phase = "F"

	FlowStart Phase = "s"
	FlowStep  Phase = "t"
	FlowEnd   Phase = "f"

	Sampled Phase = "P"

	ObjectCreated   Phase = "N"
	ObjectSnapshot  Phase = "O"
	ObjectDestroyed Phase = "D"

	Metadata Phase = "M"

	MemoryDumpGlobal  Phase = "V"
	MemoryDumpProcess Phase = "v"

	Mark Phase = "R"

	ClockSync Phase = "c"
	Context   Phase = ","
)

// Scope values for instant events.
const (
	ScopeGlobal  = "g"
	ScopeProcess = "p"
	ScopeThread  = "t"
)

type StackFrame struct {
	Parent   any    `json:"parent,omitempty"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

/*
 {
   'cpu': 0, 'tid': 1, 'ts': 1000.0,
   'name': 'cycles:HG', 'sf': 3, 'weight': 1
 }
*/

type Sample struct {
	CPU        int64   `json:"cpu"`
	ThreadID   int64   `json:"tid"`
	Timestamp  float64 `json:"ts"`
	Name       string  `json:"name"`
	StackFrame any     `json:"sf"`
	Weight     int64   `json:"weight"`
}
