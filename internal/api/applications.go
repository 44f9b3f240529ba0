package api

import (
	"context"
	"net/http"
	"net/url"

	"jobdesk-cli/internal/model"
)

type applicationsResponse struct {
	Applications []model.Application `json:"applications"`
}

type applicationResponse struct {
	Application model.Application `json:"application"`
}

type submitApplicationRequest struct {
	CoverLetter string `json:"coverLetter"`
}

type decideApplicationRequest struct {
	Status model.ApplicationStatus `json:"status"`
}

// SubmitApplication applies to a job. The server enforces the
// self-application prohibition and answers 403 when the owner tries.
func (c *Client) SubmitApplication(ctx context.Context, jobID, coverLetter string) (model.Application, error) {
	var out applicationResponse
	err := c.do(ctx, http.MethodPost, "/applications/"+url.PathEscape(jobID), submitApplicationRequest{CoverLetter: coverLetter}, &out, true)
	if err != nil {
		return model.Application{}, err
	}
	return out.Application, nil
}

// JobApplications lists applications for a job. Owner-only; the order is
// the server's and is preserved as-is.
func (c *Client) JobApplications(ctx context.Context, jobID string) ([]model.Application, error) {
	var out applicationsResponse
	if err := c.do(ctx, http.MethodGet, "/applications/job/"+url.PathEscape(jobID), nil, &out, true); err != nil {
		return nil, err
	}
	return out.Applications, nil
}

// DecideApplication sets an application's status. Last write wins; there is
// no version check.
func (c *Client) DecideApplication(ctx context.Context, applicationID string, status model.ApplicationStatus) (model.Application, error) {
	var out applicationResponse
	err := c.do(ctx, http.MethodPatch, "/applications/"+url.PathEscape(applicationID), decideApplicationRequest{Status: status}, &out, true)
	if err != nil {
		return model.Application{}, err
	}
	return out.Application, nil
}
