// Package directory holds the in-memory job collections for the lifetime of
// the current session: the public listing everyone sees and the owned
// listing of the signed-in identity. Loads go to the server; successful
// mutations are folded in locally so a create/update/delete never forces a
// full re-fetch.
package directory

import (
	"context"
	"strings"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/model"
)

// LoadState tracks one collection's fetch lifecycle. A failed load keeps the
// previously loaded jobs; only the state and message change.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadPending
	LoadOK
	LoadFailed
)

type Collection struct {
	Jobs  []model.Job
	State LoadState
	// Err is the user-facing message of the last failed load.
	Err string
}

type Directory struct {
	client *api.Client

	Public Collection
	Owned  Collection
}

func New(client *api.Client) *Directory {
	return &Directory{client: client}
}

// LoadPublic fetches the public collection. Attempted regardless of session
// state. On failure the previous jobs stay visible.
func (d *Directory) LoadPublic(ctx context.Context) error {
	d.Public.State = LoadPending
	jobs, err := d.client.PublicJobs(ctx)
	if err != nil {
		d.Public.State = LoadFailed
		d.Public.Err = fallback(api.ServerMessage(err), "Failed to fetch jobs")
		return err
	}
	d.Public.Jobs = jobs
	d.Public.State = LoadOK
	d.Public.Err = ""
	return nil
}

// LoadOwned fetches the signed-in identity's postings. Callers only invoke
// it with an active session; anonymous clients simply have no owned
// collection.
func (d *Directory) LoadOwned(ctx context.Context, sess *model.Session) error {
	if !sess.Active() {
		return api.AuthRequired("view your job postings")
	}
	d.Owned.State = LoadPending
	jobs, err := d.client.OwnedJobs(ctx)
	if err != nil {
		d.Owned.State = LoadFailed
		d.Owned.Err = fallback(api.ServerMessage(err), "Failed to fetch jobs")
		return err
	}
	d.Owned.Jobs = jobs
	d.Owned.State = LoadOK
	d.Owned.Err = ""
	return nil
}

// Search filters jobs by case-insensitive substring match across title,
// company, location and description. Pure: the input slice is never
// mutated, and an empty term returns the collection as-is.
func Search(jobs []model.Job, term string) []model.Job {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return jobs
	}
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if matches(j, term) {
			out = append(out, j)
		}
	}
	return out
}

func matches(j model.Job, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(j.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(j.Company), lowerTerm) ||
		strings.Contains(strings.ToLower(j.Location), lowerTerm) ||
		strings.Contains(strings.ToLower(j.Description), lowerTerm)
}

// Fold reconciles a created or updated job into both collections without a
// re-fetch. An existing entry (by id) is replaced in place; a new one is
// appended to public, and to owned when the collection has loaded.
func (d *Directory) Fold(job model.Job) {
	d.Public.Jobs = upsert(d.Public.Jobs, job)
	if d.Owned.State == LoadOK {
		d.Owned.Jobs = upsert(d.Owned.Jobs, job)
	}
}

// Remove drops a deleted job from both collections.
func (d *Directory) Remove(id string) {
	d.Public.Jobs = drop(d.Public.Jobs, id)
	d.Owned.Jobs = drop(d.Owned.Jobs, id)
}

// FindPublic returns the public entry with the given id, if loaded.
func (d *Directory) FindPublic(id string) (model.Job, bool) {
	for _, j := range d.Public.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return model.Job{}, false
}

func upsert(jobs []model.Job, job model.Job) []model.Job {
	for i := range jobs {
		if jobs[i].ID == job.ID {
			out := make([]model.Job, len(jobs))
			copy(out, jobs)
			out[i] = job
			return out
		}
	}
	return append(append([]model.Job(nil), jobs...), job)
}

func drop(jobs []model.Job, id string) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.ID != id {
			out = append(out, j)
		}
	}
	return out
}

func fallback(msg, def string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	return def
}
