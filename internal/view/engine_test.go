package view

import (
	"errors"
	"reflect"
	"slices"
	"testing"
	"time"

	"task-desk.com/task-desk/pkg/constants"
	"task-desk.com/task-desk/pkg/exceptions"
	model "task-desk.com/task-desk/pkg/models"
)

var base = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func task(id, title, desc string, status constants.TaskStatus, createdHours int) model.Task {
	created := base.Add(time.Duration(createdHours) * time.Hour)
	return model.Task{
		ID:          id,
		Title:       title,
		Description: desc,
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestDerive_StatusFilterKeepsGlobalStats(t *testing.T) {
	tasks := []model.Task{
		task("a", "A", "", constants.StatusPending, 0),
		task("b", "B", "", constants.StatusCompleted, 1),
	}

	p, err := DefaultParams().WithStatusFilter(string(constants.StatusCompleted))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res := Derive(tasks, p)

	if got := ids(res.Tasks); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("expected only task b, got %v", got)
	}
	if res.Stats.Total != 2 || res.Stats.Completed != 1 || res.Stats.Pending != 1 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}
	if res.Showing != 1 || res.EmptyMessage != "" {
		t.Errorf("unexpected showing/empty message: %d %q", res.Showing, res.EmptyMessage)
	}
}

func TestDerive_SearchWithoutMatches(t *testing.T) {
	tasks := []model.Task{
		task("a", "Buy milk", "at the corner shop", constants.StatusPending, 0),
		task("b", "Call mom", "", constants.StatusInProgress, 1),
	}
	before := slices.Clone(tasks)

	res := Derive(tasks, DefaultParams().WithSearch("xyz"))

	if len(res.Tasks) != 0 {
		t.Fatalf("expected no visible tasks, got %v", ids(res.Tasks))
	}
	if res.EmptyMessage != emptyFiltered {
		t.Errorf("expected filtered empty message, got %q", res.EmptyMessage)
	}
	if !reflect.DeepEqual(tasks, before) {
		t.Error("input collection was modified")
	}
}

func TestDerive_EmptyCollectionMessage(t *testing.T) {
	res := Derive(nil, DefaultParams())
	if res.EmptyMessage != emptyCollection {
		t.Errorf("expected empty collection message, got %q", res.EmptyMessage)
	}
	if res.Tasks == nil {
		t.Error("visible tasks should be an empty slice, not nil")
	}
}

func TestFilter_SearchIsCaseInsensitiveOverTitleAndDescription(t *testing.T) {
	tasks := []model.Task{
		task("a", "Quarterly REPORT", "", constants.StatusPending, 0),
		task("b", "Groceries", "includes report paper", constants.StatusPending, 1),
		task("c", "Gym", "leg day", constants.StatusPending, 2),
	}

	got := ids(Filter(tasks, DefaultParams().WithSearch("RePoRt")))
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected a and b, got %v", got)
	}
}

func TestSort_ByTitle(t *testing.T) {
	tasks := []model.Task{
		task("1", "banana", "", constants.StatusPending, 0),
		task("2", "", "", constants.StatusPending, 1),
		task("3", "Apple", "", constants.StatusPending, 2),
		task("4", "cherry", "", constants.StatusPending, 3),
	}

	asc := ids(Sort(tasks, SortByTitle, Ascending))
	if !reflect.DeepEqual(asc, []string{"3", "1", "4", "2"}) {
		t.Errorf("ascending: got %v", asc)
	}

	desc := ids(Sort(tasks, SortByTitle, Descending))
	if !reflect.DeepEqual(desc, []string{"4", "1", "3", "2"}) {
		t.Errorf("descending: got %v (missing title must stay last)", desc)
	}
}

func TestSort_ByStatus(t *testing.T) {
	tasks := []model.Task{
		task("p", "x", "", constants.StatusPending, 0),
		task("c", "x", "", constants.StatusCompleted, 1),
		task("i", "x", "", constants.StatusInProgress, 2),
	}

	got := ids(Sort(tasks, SortByStatus, Ascending))
	if !reflect.DeepEqual(got, []string{"c", "i", "p"}) {
		t.Errorf("got %v", got)
	}
}

func TestSort_ByDatesKeepsTiesInPriorOrder(t *testing.T) {
	tasks := []model.Task{
		task("old", "x", "", constants.StatusPending, 0),
		task("tie1", "x", "", constants.StatusPending, 5),
		task("tie2", "x", "", constants.StatusPending, 5),
		task("new", "x", "", constants.StatusPending, 9),
	}
	tasks[0].UpdatedAt = base.Add(20 * time.Hour)

	if got := ids(Sort(tasks, SortByCreatedAt, Descending)); !reflect.DeepEqual(got, []string{"new", "tie1", "tie2", "old"}) {
		t.Errorf("createdAt desc: got %v", got)
	}
	if got := ids(Sort(tasks, SortByCreatedAt, Ascending)); !reflect.DeepEqual(got, []string{"old", "tie1", "tie2", "new"}) {
		t.Errorf("createdAt asc: got %v", got)
	}
	if got := ids(Sort(tasks, SortByUpdatedAt, Descending)); got[0] != "old" {
		t.Errorf("updatedAt desc: expected most recently updated first, got %v", got)
	}
}

func TestParams_ToggleSort(t *testing.T) {
	p := DefaultParams()

	p = p.ToggleSort(SortByTitle)
	if p.SortKey != SortByTitle || p.Direction != Ascending {
		t.Fatalf("new key should start ascending, got %+v", p)
	}

	p = p.ToggleSort(SortByTitle)
	if p.Direction != Descending {
		t.Fatalf("same key should flip to descending, got %+v", p)
	}

	p = p.ToggleSort(SortByTitle)
	if p.Direction != Ascending {
		t.Fatalf("same key should flip back to ascending, got %+v", p)
	}

	q, _ := p.WithStatusFilter("Completed")
	q = q.WithSearch("abc")
	if q.SortKey != p.SortKey || q.Direction != p.Direction {
		t.Error("changing filter or search must not touch sort settings")
	}
}

func TestParams_WithStatusFilterSpellings(t *testing.T) {
	tasks := []model.Task{
		task("a", "A", "", constants.StatusPending, 0),
		task("b", "B", "", constants.StatusCompleted, 1),
		task("c", "C", "", constants.StatusInProgress, 2),
	}

	cases := []struct {
		filter string
		want   []string
	}{
		{"Completed", []string{"b"}},
		{"completed", []string{"b"}},
		{"ALL", []string{"a", "b", "c"}},
		{"", []string{"a", "b", "c"}},
		{"in_progress", []string{"c"}},
		{"In Progress", []string{"c"}},
	}

	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			p, err := DefaultParams().ToggleSort(SortByTitle).WithStatusFilter(tc.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ids(Derive(tasks, p).Tasks); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("filter %q: got %v, want %v", tc.filter, got, tc.want)
			}
		})
	}

	p := DefaultParams()
	q, err := p.WithStatusFilter("archived")
	if !errors.Is(err, exceptions.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if q != p {
		t.Errorf("params changed on error: %+v", q)
	}
}

func TestFilter_HandBuiltParamsAreCaseInsensitive(t *testing.T) {
	tasks := []model.Task{
		task("a", "A", "", constants.StatusPending, 0),
		task("b", "B", "", constants.StatusCompleted, 1),
	}

	p := Params{StatusFilter: "completed", SortKey: SortByTitle, Direction: Ascending}
	if got := ids(Filter(tasks, p)); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("got %v", got)
	}

	p.StatusFilter = "archived"
	if got := Filter(tasks, p); len(got) != 0 {
		t.Errorf("unknown status should match nothing, got %v", ids(got))
	}
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams("in_progress", "foo", "updated_at", "asc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Params{StatusFilter: "In Progress", Search: "foo", SortKey: SortByUpdatedAt, Direction: Ascending}
	if p != want {
		t.Errorf("got %+v, want %+v", p, want)
	}

	if p, _ := ParseParams("", "", "", ""); p != DefaultParams() {
		t.Errorf("empty input should give defaults, got %+v", p)
	}

	for _, bad := range [][4]string{
		{"archived", "", "", ""},
		{"", "", "priority", ""},
		{"", "", "", "sideways"},
	} {
		if _, err := ParseParams(bad[0], bad[1], bad[2], bad[3]); err == nil {
			t.Errorf("expected error for %v", bad)
		}
	}
}
