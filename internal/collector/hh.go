package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amishk599/vacancydb/internal/model"
)

// DefaultBaseURL is the public hh.ru API root.
const DefaultBaseURL = "https://api.hh.ru"

// Ensure HHCollector implements model.Collector.
var _ model.Collector = (*HHCollector)(nil)

// hhSalary is the salary object of an hh.ru vacancy. Either bound may be null.
type hhSalary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
}

// hhVacancy represents a single item in the hh.ru vacancy search response.
type hhVacancy struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Salary       *hhSalary `json:"salary"`
	AlternateURL string    `json:"alternate_url"`
}

// hhVacanciesResponse is one page of the hh.ru vacancy search.
type hhVacanciesResponse struct {
	Items []hhVacancy `json:"items"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// HHCollector reads employers and their open vacancies from the hh.ru API.
type HHCollector struct {
	baseURL   string
	userAgent string
	perPage   int // 0 leaves the upstream default
	client    *http.Client
}

// NewHHCollector creates a collector against baseURL. perPage <= 0 omits the
// per_page parameter.
func NewHHCollector(baseURL, userAgent string, perPage int, client *http.Client) *HHCollector {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HHCollector{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		perPage:   perPage,
		client:    client,
	}
}

// GetCompany returns the decoded employer object. Any non-200 response yields
// an empty map; only transport and decode failures are errors.
func (c *HHCollector) GetCompany(ctx context.Context, companyID int) (map[string]any, error) {
	endpoint := fmt.Sprintf("%s/employers/%d", c.baseURL, companyID)

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("hh employer %d: %w", companyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return map[string]any{}, nil
	}

	employer := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&employer); err != nil {
		return nil, fmt.Errorf("hh employer %d: %w", companyID, err)
	}
	return employer, nil
}

// GetVacanciesByCompany pages through the vacancy search for one employer,
// starting at page 0, until a page is empty or the API answers non-200.
func (c *HHCollector) GetVacanciesByCompany(ctx context.Context, companyID int) ([]model.VacancyRecord, error) {
	var records []model.VacancyRecord
	for page := 0; ; page++ {
		items, ok, err := c.fetchPage(ctx, companyID, page)
		if err != nil {
			return nil, err
		}
		if !ok || len(items) == 0 {
			break
		}
		for _, item := range items {
			records = append(records, toRecord(item))
		}
	}
	return records, nil
}

// fetchPage returns ok=false when the API answered with a non-200 status.
func (c *HHCollector) fetchPage(ctx context.Context, companyID, page int) ([]hhVacancy, bool, error) {
	params := url.Values{}
	params.Set("employer_id", strconv.Itoa(companyID))
	params.Set("page", strconv.Itoa(page))
	if c.perPage > 0 {
		params.Set("per_page", strconv.Itoa(c.perPage))
	}
	endpoint := c.baseURL + "/vacancies?" + params.Encode()

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, false, fmt.Errorf("hh vacancies for employer %d page %d: %w", companyID, page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, nil
	}

	var body hhVacanciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("hh vacancies for employer %d page %d: %w", companyID, page, err)
	}
	return body.Items, true, nil
}

func (c *HHCollector) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.client.Do(req)
}

// toRecord normalizes an upstream item. A null salary object clears both
// bounds; otherwise each bound is copied as-is, null included.
func toRecord(item hhVacancy) model.VacancyRecord {
	rec := model.VacancyRecord{
		ID:   item.ID,
		Name: item.Name,
		URL:  item.AlternateURL,
	}
	if item.Salary != nil {
		rec.SalaryFrom = item.Salary.From
		rec.SalaryTo = item.Salary.To
	}
	return rec
}
