package directory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare-web/medcare/pkg/announce"
	"github.com/medcare-web/medcare/pkg/directory"
	"github.com/medcare-web/medcare/pkg/timer"
)

func TestDefaultTable(t *testing.T) {
	t.Parallel()

	table := directory.Default().Table

	assert.Equal(t, []string{
		"cardiology", "pediatrics", "orthopedics", "neurology",
		"oncology", "womens-health", "emergency", "internal-medicine",
	}, table.Keys())

	got, ok := table.Doctors("cardiology")
	require.True(t, ok)
	want := []directory.Entry{
		{ID: "sarah-mitchell", Name: "Dr. Sarah Mitchell"},
		{ID: "robert-chen", Name: "Dr. Robert Chen"},
		{ID: "maria-gonzalez", Name: "Dr. Maria Gonzalez"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cardiology doctors mismatch (-want +got):\n%s", diff)
	}

	emergency, ok := table.Doctors("emergency")
	require.True(t, ok)
	assert.Equal(t, []directory.Entry{{ID: "emergency-team", Name: "Emergency Team"}}, emergency)

	for _, key := range table.Keys() {
		doctors, _ := table.Doctors(key)
		if key != "emergency" {
			assert.Len(t, doctors, 3, key)
		}
		for _, d := range doctors {
			if d.ID != "emergency-team" {
				assert.True(t, strings.HasPrefix(d.Name, "Dr. "), d.Name)
			}
		}
	}

	_, ok = table.Doctors("dermatology")
	assert.False(t, ok)
	assert.False(t, table.Has(""))
}

func TestTable_IsImmutable(t *testing.T) {
	t.Parallel()

	table := directory.Default().Table
	doctors, _ := table.Doctors("pediatrics")
	doctors[0].Name = "changed"

	again, _ := table.Doctors("pediatrics")
	assert.Equal(t, "Dr. Emily Chen", again[0].Name)
}

func TestTable_Labels(t *testing.T) {
	t.Parallel()

	table := directory.Default().Table
	assert.Equal(t, "Women's Health", table.Label("womens-health"))
	assert.Equal(t, "Internal Medicine", table.Label("internal-medicine"))
	assert.Equal(t, "Sports Medicine", table.Label("sports-medicine"))

	name, ok := table.DoctorName("neurology", "james-wilson")
	assert.True(t, ok)
	assert.Equal(t, "Dr. James Wilson", name)
	assert.False(t, table.Offers("neurology", "emily-chen"))
}

func TestDirectory_Filter(t *testing.T) {
	t.Parallel()

	dir := directory.Default().Directory
	ids := func(docs []directory.Doctor) []string {
		out := make([]string, 0, len(docs))
		for _, d := range docs {
			out = append(out, d.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter directory.Filter
		want   []string
	}{
		{"no filter", directory.Filter{}, ids(dir.All())},
		{"search by name", directory.Filter{Search: "CHEN"}, []string{"emily-chen", "robert-chen"}},
		{"search by specialty", directory.Filter{Search: "surgery"}, []string{"michael-rodriguez", "david-kim", "jennifer-wong", "thomas-brown"}},
		{"search by department key", directory.Filter{Search: "internal-med"}, []string{"sarah-mitchell"}},
		{"department", directory.Filter{Department: "neurology"}, []string{"amanda-taylor", "james-wilson", "rachel-davis"}},
		{"location", directory.Filter{Location: "east"}, []string{"lisa-patel", "rachel-davis"}},
		{"combined", directory.Filter{Search: "cardio", Location: "north"}, []string{"robert-chen"}},
		{"nothing", directory.Filter{Search: "dermatology"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ids(dir.Filter(tt.filter)))
		})
	}

	assert.Len(t, dir.All(), 12)
	assert.True(t, directory.Filter{Search: "  "}.IsZero())
}

func TestDirectory_Get(t *testing.T) {
	t.Parallel()

	dir := directory.Default().Directory
	doc, err := dir.Get("emily-chen")
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "Mandarin"}, doc.Languages)
	assert.Equal(t, "Main Campus", dir.LocationLabel(doc.Location))

	_, err = dir.Get("nobody")
	assert.ErrorIs(t, err, directory.ErrUnknownDoctor)
	assert.Equal(t, "west", dir.LocationLabel("west"))
}

func TestLoad_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
	}{
		{"duplicate department", `
departments:
  - {key: a, label: A, doctors: [{id: x, name: X}]}
  - {key: a, label: A, doctors: [{id: y, name: Y}]}
`},
		{"empty department", `
departments:
  - {key: a, label: A, doctors: []}
`},
		{"unknown location", `
departments:
  - {key: a, label: A, doctors: [{id: x, name: X}]}
locations:
  - {key: main, label: Main}
doctors:
  - {id: x, name: X, department: a, location: nowhere}
`},
		{"unknown department", `
departments:
  - {key: a, label: A, doctors: [{id: x, name: X}]}
locations:
  - {key: main, label: Main}
doctors:
  - {id: x, name: X, department: b, location: main}
`},
		{"unknown field", `
departments:
  - {key: a, label: A, colour: red, doctors: [{id: x, name: X}]}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := directory.Load(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, directory.ErrInvalidCatalog)
		})
	}
}

func TestCountText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Showing 0 doctors", directory.CountText(0))
	assert.Equal(t, "Showing 1 doctor", directory.CountText(1))
	assert.Equal(t, "Showing 12 doctors", directory.CountText(12))

	assert.Equal(t, "No doctors found", directory.ResultsAnnouncement(0))
	assert.Equal(t, "1 doctor found", directory.ResultsAnnouncement(1))
	assert.Equal(t, "3 doctors found", directory.ResultsAnnouncement(3))
}

func TestLiveSearch(t *testing.T) {
	t.Parallel()

	newSearch := func() (*directory.LiveSearch, *timer.ManualClock, *announce.Collector, *[]int) {
		clock := timer.NewManualClock(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
		var ann announce.Collector
		var counts []int
		s := directory.NewLiveSearch(directory.Default().Directory,
			func(_ context.Context, _ directory.Filter, docs []directory.Doctor) {
				counts = append(counts, len(docs))
			},
			directory.WithSearchClock(clock),
			directory.WithAnnouncer(&ann),
		)
		return s, clock, &ann, &counts
	}
	ctx := context.Background()

	t.Run("debounces typed input", func(t *testing.T) {
		s, clock, ann, counts := newSearch()

		for _, term := range []string{"c", "ch", "che", "chen"} {
			s.Input(ctx, term)
			clock.Advance(100 * time.Millisecond)
		}
		assert.Empty(t, *counts)

		clock.Advance(directory.DefaultSearchDebounce)
		assert.Equal(t, []int{2}, *counts)
		assert.Equal(t, "chen", s.Filter().Search)
		assert.Equal(t, []string{"2 doctors found"}, ann.Messages())
	})

	t.Run("selects apply immediately", func(t *testing.T) {
		s, _, ann, _ := newSearch()

		assert.Len(t, s.SetDepartment(ctx, "cardiology"), 3)
		assert.Len(t, s.SetLocation(ctx, "south"), 1)
		assert.Empty(t, ann.Messages())
	})

	t.Run("clear cancels pending input and resets filters", func(t *testing.T) {
		s, clock, ann, counts := newSearch()

		s.SetLocation(ctx, "north")
		s.Input(ctx, "spine")
		all := s.Clear(ctx)
		clock.Advance(time.Second)

		assert.Len(t, all, 12)
		assert.Equal(t, directory.Filter{}, s.Filter())
		assert.Equal(t, []int{2, 12}, *counts)
		assert.Equal(t, []string{"All filters cleared"}, ann.Messages())
	})

	t.Run("search now skips the debounce", func(t *testing.T) {
		s, _, ann, _ := newSearch()
		assert.Empty(t, s.SearchNow(ctx, "dermatology"))
		assert.Equal(t, "No doctors found", ann.Last())
	})
}
