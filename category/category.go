// Package category maps trace event names to the work categories shown in
// the devtools summary.
package category

import (
	"fmt"

	"github.com/elastic/go-freelru"
	"github.com/zeebo/xxh3"
)

type Label string

const (
	Scripting Label = "scripting"
	Other     Label = "other"
	Rendering Label = "rendering"
	Painting  Label = "painting"
	GPU       Label = "gpu"
	Async     Label = "async"
	Loading   Label = "loading"

	// Idle and Busy are derived from the totals and never assigned to events.
	Idle Label = "idle"
	Busy Label = "busy"
)

// Group lists the event names that belong to a label.
type Group struct {
	Label Label
	Names []string
}

func (g Group) Contains(name string) bool {
	for _, n := range g.Names {
		if n == name {
			return true
		}
	}
	return false
}

// Groups is the event name table. Order matters when a name appears in
// more than one group: the first group wins.
var Groups = []Group{
	{Scripting, []string{
		"EventDispatch",
		"TimerInstall",
		"TimerRemove",
		"TimerFire",
		"XHRReadyStateChange",
		"XHRLoad",
		"v8.compile",
		"EvaluateScript",
		"v8.parseOnBackground",
		"MarkLoad",
		"MarkDOMContent",
		"TimeStamp",
		"ConsoleTime",
		"UserTiming",
		"RunMicrotasks",
		"FunctionCall",
		"GCEvent",
		"MajorGC",
		"MinorGC",
		"JSFrame",
		"RequestAnimationFrame",
		"CancelAnimationFrame",
		"FireAnimationFrame",
		"RequestIdleCallback",
		"CancelIdleCallback",
		"FireIdleCallback",
		"WebSocketCreate",
		"WebSocketSendHandshakeRequest",
		"WebSocketReceiveHandshakeResponse",
		"WebSocketDestroy",
		"EmbedderCallback",
		"LatencyInfo",
		"ThreadState::performIdleLazySweep",
		"ThreadState::completeSweep",
		"BlinkGCMarking",
	}},
	{Other, []string{
		"Task",
		"Program",
	}},
	{Rendering, []string{
		"Animation",
		"RequestMainThreadFrame",
		"BeginFrame",
		"BeginMainThreadFrame",
		"DrawFrame",
		"HitTest",
		"ScheduleStyleRecalculation",
		"RecalculateStyles",
		"UpdateLayoutTree",
		"InvalidateLayout",
		"Layout",
		"UpdateLayerTree",
		"ScrollLayer",
		"firstMeaningfulPaint",
		"firstMeaningfulPaintCandidate",
	}},
	{Painting, []string{
		"PaintSetup",
		"PaintImage",
		"UpdateLayer",
		"Paint",
		"RasterTask",
		"CompositeLayers",
		"MarkFirstPaint",
		"Decode Image",
		"Resize Image",
	}},
	{GPU, []string{
		"GPUTask",
	}},
	{Async, []string{
		"async",
	}},
	{Loading, []string{
		"ParseHTML",
		"ParseAuthorStyleSheet",
		"ResourceSendRequest",
		"ResourceReceiveResponse",
		"ResourceFinish",
		"ResourceReceivedData",
	}},
}

// Labels lists every label a summary can contain, derived ones last.
var Labels = []Label{Scripting, Other, Rendering, Painting, GPU, Async, Loading, Idle, Busy}

// cacheSize is well above the number of distinct event names Chrome emits,
// so entries are not evicted in practice.
const cacheSize = 8192

// Table classifies event names, remembering every answer.
type Table struct {
	groups []Group
	cache  *freelru.SyncedLRU[string, Label]
}

// Default is shared by all callers that do not bring their own table.
var Default = mustTable(Groups...)

func mustTable(groups ...Group) *Table {
	table, err := NewTable(groups...)
	if err != nil {
		panic(err)
	}
	return table
}

func NewTable(groups ...Group) (*Table, error) {
	cache, err := freelru.NewSynced[string, Label](cacheSize, hashName)
	if err != nil {
		return nil, fmt.Errorf("failed to create category cache: %w", err)
	}
	return &Table{
		groups: groups,
		cache:  cache,
	}, nil
}

func hashName(name string) uint32 {
	return uint32(xxh3.HashString(name))
}

// Classify returns the label of the first group listing name, or Other.
// Table is safe for concurrent use.
func (table *Table) Classify(name string) Label {
	if label, ok := table.cache.Get(name); ok {
		return label
	}

	label := Other
	for _, g := range table.groups {
		if g.Contains(name) {
			label = g.Label
			break
		}
	}

	table.cache.Add(name, label)
	return label
}

// CacheLen returns the number of remembered names.
func (table *Table) CacheLen() int {
	return table.cache.Len()
}

// Classify classifies name using the Default table.
func Classify(name string) Label {
	return Default.Classify(name)
}
