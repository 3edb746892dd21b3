package store

import (
	"context"
	"database/sql"
	"math"

	"github.com/amishk599/vacancydb/internal/model"
)

// GetCompaniesAndVacanciesCount returns every company with its vacancy count,
// including companies that have none.
func (r *Repository) GetCompaniesAndVacanciesCount(ctx context.Context) ([]model.CompanyVacancyCount, error) {
	rows, err := r.db.QueryContext(ctx, countsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.CompanyVacancyCount
	for rows.Next() {
		var c model.CompanyVacancyCount
		if err := rows.Scan(&c.ID, &c.Name, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetAllVacancies returns every vacancy whose employer resolves to a company.
func (r *Repository) GetAllVacancies(ctx context.Context) ([]model.VacancyRow, error) {
	return r.queryVacancyRows(ctx, allVacanciesQuery)
}

// GetAvgSalary returns the mean salary midpoint rounded to two decimals.
// Vacancies missing either bound have no midpoint and are left out of the
// average rather than falling back to the bound that is present. ok is false
// when no vacancy has a midpoint.
func (r *Repository) GetAvgSalary(ctx context.Context) (avg float64, ok bool, err error) {
	var result sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, avgSalaryQuery).Scan(&result); err != nil {
		return 0, false, err
	}
	if !result.Valid {
		return 0, false, nil
	}
	return roundCents(result.Float64), true, nil
}

// GetVacanciesWithHigherSalary returns vacancies whose midpoint is strictly
// above the current average. It returns nothing when there is no average.
func (r *Repository) GetVacanciesWithHigherSalary(ctx context.Context) ([]model.VacancyRow, error) {
	avg, ok, err := r.GetAvgSalary(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.VacancyRow{}, nil
	}
	return r.queryVacancyRows(ctx, r.dialect.higherSalary, avg)
}

// GetVacanciesWithKeyword returns vacancies whose title contains keyword,
// ignoring case.
func (r *Repository) GetVacanciesWithKeyword(ctx context.Context, keyword string) ([]model.VacancyRow, error) {
	return r.queryVacancyRows(ctx, r.dialect.keyword, "%"+keyword+"%")
}

func (r *Repository) queryVacancyRows(ctx context.Context, query string, args ...any) ([]model.VacancyRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.VacancyRow{}
	for rows.Next() {
		var (
			v        model.VacancyRow
			from, to sql.NullFloat64
		)
		if err := rows.Scan(&v.CompanyName, &v.Title, &from, &to, &v.URL); err != nil {
			return nil, err
		}
		v.SalaryFrom = nullableFloat(from)
		v.SalaryTo = nullableFloat(to)
		result = append(result, v)
	}
	return result, rows.Err()
}

func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
