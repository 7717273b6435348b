// Package jobsearch is a client for the JSearch job-listing API on RapidAPI.
package jobsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"job-tracker-api/config"
	"job-tracker-api/internal/models"

	log "github.com/sirupsen/logrus"
)

var (
	ErrRateLimited = errors.New("jobsearch: rate limited")
	ErrUpstream    = errors.New("jobsearch: upstream failure")
)

const maxResponseBytes = 10 << 20

// Client calls the upstream search endpoint. It is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	apiHost string
	client  *http.Client
}

// NewClient creates a Client from configuration. A nil httpClient gets one
// with the configured timeout.
func NewClient(cfg config.JobSearchConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		apiHost: cfg.APIHost,
		client:  httpClient,
	}
}

type searchResponse struct {
	Status string        `json:"status"`
	Data   []upstreamJob `json:"data"`
}

type upstreamJob struct {
	JobID             string   `json:"job_id"`
	JobTitle          string   `json:"job_title"`
	EmployerName      string   `json:"employer_name"`
	JobCity           string   `json:"job_city"`
	JobCountry        string   `json:"job_country"`
	JobMinSalary      *float64 `json:"job_min_salary"`
	JobMaxSalary      *float64 `json:"job_max_salary"`
	JobSalaryCurrency string   `json:"job_salary_currency"`
	JobApplyLink      string   `json:"job_apply_link"`
	JobDescription    string   `json:"job_description"`
	JobEmploymentType string   `json:"job_employment_type"`
	JobIsRemote       bool     `json:"job_is_remote"`
}

// Search fetches one results page for query.
func (c *Client) Search(ctx context.Context, query string, page int) ([]models.ExternalListing, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: api key not configured", ErrUpstream)
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("num_pages", "1")
	endpoint := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", ErrUpstream, err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.apiHost)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http get: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		log.WithField("query", query).Warn("Job search upstream rate limit hit")
		return nil, ErrRateLimited
	case resp.StatusCode != http.StatusOK:
		log.WithFields(log.Fields{"status": resp.StatusCode, "body": truncate(string(body), 512)}).
			Error("Job search upstream returned an error")
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	listings := make([]models.ExternalListing, 0, len(decoded.Data))
	for _, job := range decoded.Data {
		listings = append(listings, toListing(job))
	}
	return listings, nil
}

func toListing(job upstreamJob) models.ExternalListing {
	return models.ExternalListing{
		ExternalID:     job.JobID,
		Title:          job.JobTitle,
		Company:        job.EmployerName,
		Location:       FormatLocation(job.JobCity, job.JobCountry),
		Salary:         FormatSalary(job.JobSalaryCurrency, job.JobMinSalary, job.JobMaxSalary),
		ApplyLink:      job.JobApplyLink,
		Description:    job.JobDescription,
		EmploymentType: job.JobEmploymentType,
		IsRemote:       job.JobIsRemote,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
