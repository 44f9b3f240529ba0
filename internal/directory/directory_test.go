package directory

import (
	"reflect"
	"testing"

	"jobdesk-cli/internal/model"
)

func sampleJobs() []model.Job {
	return []model.Job{
		{ID: "j-1", Title: "Backend Engineer", Company: "Acme", Location: "Remote", Description: "Go services"},
		{ID: "j-2", Title: "Designer", Company: "Engineered Arts", Location: "Oslo", Description: "Figma all day"},
		{ID: "j-3", Title: "Baker", Company: "Crumb", Location: "Lyon", Description: "Early mornings"},
	}
}

func ids(jobs []model.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestSearchMatchesAcrossFields(t *testing.T) {
	jobs := sampleJobs()

	cases := []struct {
		term string
		want []string
	}{
		{"", []string{"j-1", "j-2", "j-3"}},
		{"engineer", []string{"j-1", "j-2"}}, // title and company
		{"ENGINEER", []string{"j-1", "j-2"}}, // case-insensitive
		{"lyon", []string{"j-3"}},            // location
		{"figma", []string{"j-2"}},           // description
		{"zeppelin", []string{}},
		{"  ", []string{"j-1", "j-2", "j-3"}}, // whitespace-only is empty
	}

	for _, tc := range cases {
		got := ids(Search(jobs, tc.term))
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Search(%q) = %v, want %v", tc.term, got, tc.want)
		}
	}
}

func TestSearchIsPure(t *testing.T) {
	jobs := sampleJobs()
	before := ids(jobs)

	_ = Search(jobs, "engineer")
	_ = Search(jobs, "baker")

	if !reflect.DeepEqual(ids(jobs), before) {
		t.Fatalf("Search mutated its input: %v", ids(jobs))
	}

	// Idempotent: filtering a filtered set with the same term changes nothing.
	once := Search(jobs, "engineer")
	twice := Search(once, "engineer")
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("Search not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestSearchCommutesWithRefresh(t *testing.T) {
	// Filtering after a refresh of identical data equals filtering the
	// previous collection.
	d := &Directory{}
	d.Public.Jobs = sampleJobs()
	prev := Search(d.Public.Jobs, "engineer")

	d.Public.Jobs = sampleJobs() // simulated re-fetch, same underlying data
	next := Search(d.Public.Jobs, "engineer")

	if !reflect.DeepEqual(ids(prev), ids(next)) {
		t.Fatalf("filtered sets diverged across refresh: %v vs %v", ids(prev), ids(next))
	}
}

func TestFoldUpsertsBothCollections(t *testing.T) {
	d := &Directory{}
	d.Public.Jobs = sampleJobs()
	d.Owned.Jobs = []model.Job{{ID: "j-1", Title: "Backend Engineer"}}
	d.Owned.State = LoadOK

	// Update in place.
	d.Fold(model.Job{ID: "j-1", Title: "Senior Backend Engineer", OwnerID: "u-1"})
	if d.Public.Jobs[0].Title != "Senior Backend Engineer" {
		t.Fatalf("public not updated: %q", d.Public.Jobs[0].Title)
	}
	if d.Owned.Jobs[0].Title != "Senior Backend Engineer" {
		t.Fatalf("owned not updated: %q", d.Owned.Jobs[0].Title)
	}

	// New job appends to both.
	d.Fold(model.Job{ID: "j-9", Title: "SRE", OwnerID: "u-1"})
	if got := len(d.Public.Jobs); got != 4 {
		t.Fatalf("public len = %d, want 4", got)
	}
	if got := len(d.Owned.Jobs); got != 2 {
		t.Fatalf("owned len = %d, want 2", got)
	}
}

func TestFoldSkipsUnloadedOwnedCollection(t *testing.T) {
	d := &Directory{}
	d.Public.Jobs = sampleJobs()

	d.Fold(model.Job{ID: "j-9", Title: "SRE"})
	if len(d.Owned.Jobs) != 0 {
		t.Fatalf("owned collection grew before ever loading")
	}
}

func TestRemoveDropsFromBothCollections(t *testing.T) {
	d := &Directory{}
	d.Public.Jobs = sampleJobs()
	d.Owned.Jobs = []model.Job{{ID: "j-1"}, {ID: "j-3"}}

	d.Remove("j-1")

	if got := ids(d.Public.Jobs); !reflect.DeepEqual(got, []string{"j-2", "j-3"}) {
		t.Fatalf("public after remove = %v", got)
	}
	if got := ids(d.Owned.Jobs); !reflect.DeepEqual(got, []string{"j-3"}) {
		t.Fatalf("owned after remove = %v", got)
	}
}
