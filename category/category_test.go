package category

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		expected Label
	}{
		{name: "FunctionCall", expected: Scripting},
		{name: "ThreadState::completeSweep", expected: Scripting},
		{name: "Task", expected: Other},
		{name: "Program", expected: Other},
		{name: "Layout", expected: Rendering},
		{name: "firstMeaningfulPaint", expected: Rendering},
		{name: "Decode Image", expected: Painting},
		{name: "GPUTask", expected: GPU},
		{name: "async", expected: Async},
		{name: "ParseHTML", expected: Loading},
		{name: "SomethingNew", expected: Other},
		{name: "", expected: Other},
		// names are matched exactly
		{name: "layout", expected: Other},
	}

	table, err := NewTable(Groups...)
	require.NoError(t, err)

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, table.Classify(test.name))
			// a second lookup is served from the cache
			assert.Equal(t, test.expected, table.Classify(test.name))
		})
	}
}

func TestClassifyCachesFallback(t *testing.T) {
	table, err := NewTable(Groups...)
	require.NoError(t, err)

	assert.Equal(t, 0, table.CacheLen())
	assert.Equal(t, Other, table.Classify("Unknown"))
	assert.Equal(t, Scripting, table.Classify("EvaluateScript"))
	assert.Equal(t, Other, table.Classify("Unknown"))
	assert.Equal(t, 2, table.CacheLen())
}

func TestClassifyFirstGroupWins(t *testing.T) {
	table, err := NewTable(
		Group{Label: Loading, Names: []string{"Shared"}},
		Group{Label: Painting, Names: []string{"Shared", "Paint"}},
	)
	require.NoError(t, err)

	assert.Equal(t, Loading, table.Classify("Shared"))
	assert.Equal(t, Painting, table.Classify("Paint"))
}

func TestClassifyConcurrent(t *testing.T) {
	table, err := NewTable(Groups...)
	require.NoError(t, err)

	names := []string{"FunctionCall", "Layout", "Paint", "GPUTask", "Unknown"}
	expected := []Label{Scripting, Rendering, Painting, GPU, Other}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				idx := k % len(names)
				assert.Equal(t, expected[idx], table.Classify(names[idx]))
			}
		}()
	}
	wg.Wait()
}

func TestLabels(t *testing.T) {
	require.Len(t, Labels, len(Groups)+2)
	for i, g := range Groups {
		assert.Equal(t, g.Label, Labels[i])
	}
	assert.Equal(t, []Label{Idle, Busy}, Labels[len(Groups):])
}

func TestDefault(t *testing.T) {
	assert.Equal(t, Painting, Classify("RasterTask"))
	assert.Equal(t, Loading, Default.Classify("ResourceFinish"))
}
