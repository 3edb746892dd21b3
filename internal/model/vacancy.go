package model

import "context"

// Company is an employer row in the companies table.
type Company struct {
	ID   int64
	Name string // unique across companies
}

// Vacancy is one stored job posting.
type Vacancy struct {
	ID         int64
	EmployerID *int64 // nullable
	Title      string
	SalaryFrom *float64 // nil when not published
	SalaryTo   *float64 // nil when not published
	URL        string
}

// VacancyRecord is a vacancy as produced by the collector, before it is stored.
type VacancyRecord struct {
	ID         string   // upstream vacancy id
	Name       string   // vacancy title
	SalaryFrom *float64 // nil if the salary object or the bound is absent
	SalaryTo   *float64
	URL        string // upstream alternate_url
}

// CompanyVacancyCount is one row of the per-company vacancy count query.
type CompanyVacancyCount struct {
	ID    int64
	Name  string
	Count int64
}

// VacancyRow is the row shape shared by every vacancy listing query.
type VacancyRow struct {
	CompanyName string
	Title       string
	SalaryFrom  *float64
	SalaryTo    *float64
	URL         string
}

// Collector fetches employer metadata and open vacancies from the upstream API.
type Collector interface {
	GetCompany(ctx context.Context, companyID int) (map[string]any, error)
	GetVacanciesByCompany(ctx context.Context, companyID int) ([]VacancyRecord, error)
}

// VacancyWriter persists companies and vacancies.
type VacancyWriter interface {
	InsertCompany(ctx context.Context, name string) (int64, error)
	InsertVacancy(ctx context.Context, employerID *int64, title string, salaryFrom, salaryTo *float64, url string) (int64, error)
}

// VacancyReader runs the analytical queries over stored vacancies.
type VacancyReader interface {
	GetCompaniesAndVacanciesCount(ctx context.Context) ([]CompanyVacancyCount, error)
	GetAllVacancies(ctx context.Context) ([]VacancyRow, error)
	GetAvgSalary(ctx context.Context) (float64, bool, error)
	GetVacanciesWithHigherSalary(ctx context.Context) ([]VacancyRow, error)
	GetVacanciesWithKeyword(ctx context.Context, keyword string) ([]VacancyRow, error)
}

// EmployerName returns the "name" field of decoded employer metadata, or ""
// when it is missing or not a string.
func EmployerName(employer map[string]any) string {
	name, _ := employer["name"].(string)
	return name
}
