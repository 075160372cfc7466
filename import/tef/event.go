package tef

import "strings"

// TracingStartedPrefix starts the name of every marker Chrome emits when a
// process or frame starts being traced.
const TracingStartedPrefix = "TracingStartedIn"

// Categories splits the comma separated category list.
func (ev *Event) Categories() []string {
	if ev.Category == "" {
		return nil
	}
	cats := strings.Split(ev.Category, ",")
	for i, c := range cats {
		cats[i] = strings.TrimSpace(c)
	}
	return cats
}

func (ev *Event) HasCategory(cat string) bool {
	for _, c := range ev.Categories() {
		if c == cat {
			return true
		}
	}
	return false
}

// IsTracingStarted reports whether ev is one of the TracingStartedIn* markers.
func (ev *Event) IsTracingStarted() bool {
	return strings.HasPrefix(ev.Name, TracingStartedPrefix)
}

// Frame returns the frame the event refers to. args.frame wins, otherwise
// the first present payload among args.data, args.beginData and
// args.counters is inspected for a frame or page field.
func (ev *Event) Frame() (any, bool) {
	if ev.Args == nil {
		return nil, false
	}
	if frame := ev.Args["frame"]; present(frame) {
		return frame, true
	}

	var data any
	for _, key := range []string{"data", "beginData", "counters"} {
		if v := ev.Args[key]; present(v) {
			data = v
			break
		}
	}
	payload, ok := data.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range []string{"frame", "page"} {
		if v := payload[key]; present(v) {
			return v, true
		}
	}
	return nil, false
}

// present follows how trace producers leave out values: empty strings,
// zeros, false and null all mean "not set".
func present(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case float64:
		return v != 0
	case int64:
		return v != 0
	case int:
		return v != 0
	case bool:
		return v
	default:
		return true
	}
}
