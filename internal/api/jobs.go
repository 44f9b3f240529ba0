package api

import (
	"context"
	"net/http"
	"net/url"

	"jobdesk-cli/internal/model"
)

type jobsResponse struct {
	Jobs []model.Job `json:"jobs"`
}

type jobResponse struct {
	Job model.Job `json:"job"`
}

// PublicJobs lists all public postings. Never authenticated: anonymous
// visitors browse the same collection.
func (c *Client) PublicJobs(ctx context.Context) ([]model.Job, error) {
	var out jobsResponse
	if err := c.do(ctx, http.MethodGet, "/jobs/public", nil, &out, false); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

// OwnedJobs lists postings created by the current identity.
func (c *Client) OwnedJobs(ctx context.Context) ([]model.Job, error) {
	var out jobsResponse
	if err := c.do(ctx, http.MethodGet, "/jobs", nil, &out, true); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (model.Job, error) {
	var out jobResponse
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, &out, true); err != nil {
		return model.Job{}, err
	}
	return out.Job, nil
}

func (c *Client) CreateJob(ctx context.Context, fields model.JobFields) (model.Job, error) {
	var out jobResponse
	if err := c.do(ctx, http.MethodPost, "/jobs", fields, &out, true); err != nil {
		return model.Job{}, err
	}
	return out.Job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id string, fields model.JobFields) (model.Job, error) {
	var out jobResponse
	if err := c.do(ctx, http.MethodPatch, "/jobs/"+url.PathEscape(id), fields, &out, true); err != nil {
		return model.Job{}, err
	}
	return out.Job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil, true)
}
