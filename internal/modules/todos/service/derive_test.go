package service_test

import (
	"testing"

	"todohub/internal/modules/todos/domain"
	"todohub/internal/modules/todos/service"
)

var sample = []domain.Todo{
	{ID: "1", Title: "write report", Completed: true},
	{ID: "2", Title: "review notes"},
	{ID: "3", Title: "ship release", Completed: true},
	{ID: "4", Title: "plan sprint"},
}

func TestApplyFilters(t *testing.T) {
	t.Parallel()
	var d service.Deriver

	cases := []struct {
		filter  domain.Filter
		wantIDs []string
	}{
		{domain.FilterAll, []string{"1", "2", "3", "4"}},
		{domain.Filter(""), []string{"1", "2", "3", "4"}},
		{domain.FilterActive, []string{"2", "4"}},
		{domain.FilterCompleted, []string{"1", "3"}},
	}
	for _, tc := range cases {
		got := d.Apply(sample, tc.filter)
		if len(got) != len(tc.wantIDs) {
			t.Fatalf("filter %q: expected %d items, got %d", tc.filter, len(tc.wantIDs), len(got))
		}
		for i, id := range tc.wantIDs {
			if got[i].ID != id {
				t.Errorf("filter %q: item %d is %s, want %s", tc.filter, i, got[i].ID, id)
			}
		}
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()
	var d service.Deriver

	stats := d.Compute(sample)
	if stats.Total != 4 || stats.Completed != 2 || stats.Active != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Completed+stats.Active != stats.Total {
		t.Fatalf("completed+active must equal total: %+v", stats)
	}
	if stats.Percent != 50 {
		t.Fatalf("expected 50%%, got %d", stats.Percent)
	}
}

func TestComputeStatsRounding(t *testing.T) {
	t.Parallel()
	var d service.Deriver

	stats := d.Compute([]domain.Todo{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3"},
	})
	if stats.Percent != 33 {
		t.Fatalf("expected 33%%, got %d", stats.Percent)
	}

	stats = d.Compute([]domain.Todo{
		{ID: "1", Completed: true},
		{ID: "2", Completed: true},
		{ID: "3"},
	})
	if stats.Percent != 67 {
		t.Fatalf("expected 67%%, got %d", stats.Percent)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	t.Parallel()
	var d service.Deriver

	stats := d.Compute(nil)
	if stats.Total != 0 || stats.Percent != 0 {
		t.Fatalf("expected zero stats for an empty collection, got %+v", stats)
	}
}
