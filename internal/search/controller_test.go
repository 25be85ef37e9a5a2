// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package search

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janderssonse/actstore/internal/catalog"
	"github.com/janderssonse/actstore/internal/dispatch"
)

var errNoIcon = errors.New("no icon")

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func scenarioCatalog() []catalog.Entry {
	return []catalog.Entry{
		{ID: 0, Name: "Paint", Description: "draw pictures", Icon: "paint"},
		{ID: 1, Name: "Music", Description: "play sound"},
	}
}

func largeCatalog(size int) []catalog.Entry {
	entries := make([]catalog.Entry, size)
	for i := range entries {
		entries[i] = catalog.Entry{
			ID:          i,
			Name:        fmt.Sprintf("Activity %03d", i),
			Description: fmt.Sprintf("abc item %d", i),
		}
	}

	entries[size/2].Description = "xyz special"
	entries[size-1].Name = "XYZ Last"

	return entries
}

// pump plays the dispatch loop on the test goroutine until the controller
// is idle.
func pump(t *testing.T, queue *dispatch.Queue, controller *Controller) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		queue.Drain()

		if !controller.Running() && queue.Len() == 0 {
			return
		}

		time.Sleep(time.Millisecond)
	}

	t.Fatal("search did not settle")
}

func rowNames(rows []catalog.Row) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}

	return names
}

func entryNames(entries []catalog.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}

	return names
}

type staticIcons map[int]string

func (s staticIcons) Icon(id int) (string, error) {
	icon, ok := s[id]
	if !ok {
		return "", errNoIcon
	}

	return icon, nil
}

// gatedIcons blocks the first lookup until the gate opens.
type gatedIcons struct {
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func newGatedIcons() *gatedIcons {
	return &gatedIcons{entered: make(chan struct{}), gate: make(chan struct{})}
}

func (g *gatedIcons) Icon(_ int) (string, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.gate

	return "", errNoIcon
}

// countingQueue counts every function posted to the queue.
type countingQueue struct {
	*dispatch.Queue

	posts atomic.Int64
}

func (q *countingQueue) Post(fn func()) {
	q.posts.Add(1)
	q.Queue.Post(fn)
}

func TestController_Scenario(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches name", "pa", []string{"Paint"}},
		{"matches description", "play", []string{"Music"}},
		{"empty query shows all", "", []string{"Paint", "Music"}},
		{"case insensitive", "MUSIC", []string{"Music"}},
		{"no match", "zzz", []string{}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			queue := dispatch.NewQueue()
			controller := NewController(scenarioCatalog(), nil, queue, testLogger())

			controller.Search(testCase.query)
			pump(t, queue, controller)

			assert.Equal(t, testCase.want, rowNames(controller.Model().Rows()))
		})
	}
}

func TestController_ResultsEqualFilterInCatalogOrder(t *testing.T) {
	t.Parallel()

	entries := largeCatalog(200)

	for _, query := range []string{"", "abc", "xyz", "Activity 1", "item 19", "nothing"} {
		queue := dispatch.NewQueue()
		controller := NewController(entries, nil, queue, testLogger())

		controller.Search(query)
		pump(t, queue, controller)

		assert.Equal(t, entryNames(Filter(entries, query)), rowNames(controller.Model().Rows()), "query %q", query)
	}
}

func TestController_IconFailureDoesNotAbortScan(t *testing.T) {
	t.Parallel()

	queue := dispatch.NewQueue()
	controller := NewController(scenarioCatalog(), staticIcons{0: "paint"}, queue, testLogger())

	controller.Search("")
	pump(t, queue, controller)

	rows := controller.Model().Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "paint", rows[0].Icon)
	assert.Empty(t, rows[1].Icon)
}

func TestController_NewerSearchSupersedesRunningOne(t *testing.T) {
	t.Parallel()

	entries := largeCatalog(100)
	icons := newGatedIcons()
	queue := dispatch.NewQueue()
	controller := NewController(entries, icons, queue, testLogger())

	controller.Search("abc")
	require.True(t, controller.Running())

	<-icons.entered

	controller.Search("xyz")
	close(icons.gate)

	pump(t, queue, controller)

	assert.Equal(t, "xyz", controller.Query())
	assert.Equal(t, entryNames(Filter(entries, "xyz")), rowNames(controller.Model().Rows()))
}

func TestController_BurstCoalescesToLatestQuery(t *testing.T) {
	t.Parallel()

	entries := largeCatalog(100)
	icons := newGatedIcons()
	queue := dispatch.NewQueue()
	controller := NewController(entries, icons, queue, testLogger())

	controller.Search("a")
	<-icons.entered

	controller.Search("ab")
	controller.Search("abc")
	controller.Search("xyz")
	close(icons.gate)

	pump(t, queue, controller)

	assert.Equal(t, "xyz", controller.Query())
	assert.Equal(t, entryNames(Filter(entries, "xyz")), rowNames(controller.Model().Rows()))
}

func TestController_StopLeavesPartialRowsUntilNextPass(t *testing.T) {
	t.Parallel()

	entries := largeCatalog(50)
	icons := newGatedIcons()
	queue := dispatch.NewQueue()
	controller := NewController(entries, icons, queue, testLogger())

	controller.Search("")
	<-icons.entered

	controller.Stop()
	close(icons.gate)
	pump(t, queue, controller)

	partial := controller.Model().Len()
	assert.Less(t, partial, len(entries))

	controller.Search("")
	pump(t, queue, controller)

	assert.Len(t, controller.Model().Rows(), len(entries))
}

func TestController_ChangeHandlerRunsOnLoop(t *testing.T) {
	t.Parallel()

	queue := dispatch.NewQueue()
	controller := NewController(scenarioCatalog(), nil, queue, testLogger())

	changes := 0
	controller.SetChangeHandler(func() { changes++ })

	controller.Search("")
	assert.Equal(t, 1, changes, "reset notifies synchronously")

	pump(t, queue, controller)
	assert.Equal(t, 4, changes, "reset, two appends and completion")
}

func TestModel_RejectsStaleAppends(t *testing.T) {
	t.Parallel()

	model := NewModel()
	model.Reset(2)

	assert.False(t, model.Append(1, catalog.Row{Name: "stale"}))
	assert.True(t, model.Append(2, catalog.Row{Name: "fresh"}))

	row, ok := model.Row(0)
	require.True(t, ok)
	assert.Equal(t, "fresh", row.Name)

	_, ok = model.Row(1)
	assert.False(t, ok)

	model.Reset(3)
	assert.Equal(t, 0, model.Len())
	assert.Equal(t, uint64(3), model.Version())
}

func TestFilter_EmptyQueryKeepsOrder(t *testing.T) {
	t.Parallel()

	entries := largeCatalog(10)
	assert.Equal(t, entries, Filter(entries, ""))
}

func TestController_SupersededSearchWaitsForWorker(t *testing.T) {
	t.Parallel()

	entries := largeCatalog(100)
	icons := newGatedIcons()
	queue := &countingQueue{Queue: dispatch.NewQueue()}
	controller := NewController(entries, icons, queue, testLogger())

	controller.Search("")
	<-icons.entered

	controller.Search("xyz")

	// The cancelled worker is still blocked, so the loop has nothing to do.
	for range 20 {
		queue.Drain()
		time.Sleep(time.Millisecond)
	}

	assert.Zero(t, queue.posts.Load())
	assert.True(t, controller.Running())

	close(icons.gate)
	pump(t, queue.Queue, controller)

	assert.Equal(t, "xyz", controller.Query())
	assert.Equal(t, entryNames(Filter(entries, "xyz")), rowNames(controller.Model().Rows()))

	// One row and a completion from the cancelled pass, two rows and a
	// completion from the new one.
	assert.LessOrEqual(t, queue.posts.Load(), int64(5))
}

func TestController_StopDropsWaitingQuery(t *testing.T) {
	t.Parallel()

	entries := largeCatalog(50)
	icons := newGatedIcons()
	queue := dispatch.NewQueue()
	controller := NewController(entries, icons, queue, testLogger())

	controller.Search("")
	<-icons.entered

	controller.Search("xyz")
	controller.Stop()
	close(icons.gate)
	pump(t, queue, controller)

	assert.Empty(t, controller.Query())
	assert.Less(t, controller.Model().Len(), len(entries))
}
