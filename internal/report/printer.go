package report

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/vacancydb/internal/model"
)

// Printer renders query results as plain text tables.
type Printer struct {
	w       io.Writer
	heading lipgloss.Style
}

// NewPrinter returns a printer writing to w. Headings are styled only when w
// is a color-capable terminal.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}

// Full runs every read query against reader and prints the results, ending
// with the vacancies whose title contains keyword.
func (p *Printer) Full(ctx context.Context, reader model.VacancyReader, keyword string) error {
	counts, err := reader.GetCompaniesAndVacanciesCount(ctx)
	if err != nil {
		return fmt.Errorf("companies and vacancies count: %w", err)
	}
	p.Companies(counts)

	avg, ok, err := reader.GetAvgSalary(ctx)
	if err != nil {
		return fmt.Errorf("average salary: %w", err)
	}
	p.AvgSalary(avg, ok)

	higher, err := reader.GetVacanciesWithHigherSalary(ctx)
	if err != nil {
		return fmt.Errorf("vacancies above average: %w", err)
	}
	p.Vacancies("Vacancies with salary above average", higher)

	matched, err := reader.GetVacanciesWithKeyword(ctx, keyword)
	if err != nil {
		return fmt.Errorf("vacancies matching %q: %w", keyword, err)
	}
	p.Vacancies(fmt.Sprintf("Vacancies containing %q", keyword), matched)
	return nil
}

// Companies prints each company with its vacancy count.
func (p *Printer) Companies(counts []model.CompanyVacancyCount) {
	p.section("Companies and vacancy counts")
	fmt.Fprintf(p.w, "%-8s %-40s %s\n", "ID", "Company", "Vacancies")
	fmt.Fprintln(p.w, strings.Repeat("─", 58))
	for _, c := range counts {
		fmt.Fprintf(p.w, "%-8d %-40s %d\n", c.ID, c.Name, c.Count)
	}
	fmt.Fprintf(p.w, "\nTotal: %d companies\n", len(counts))
}

// AvgSalary prints the average salary, or n/a when there is none.
func (p *Printer) AvgSalary(avg float64, ok bool) {
	p.section("Average salary")
	if !ok {
		fmt.Fprintln(p.w, "n/a")
		return
	}
	fmt.Fprintln(p.w, strconv.FormatFloat(avg, 'f', 2, 64))
}

// Vacancies prints vacancy rows under title.
func (p *Printer) Vacancies(title string, rows []model.VacancyRow) {
	p.section(title)
	if len(rows) == 0 {
		fmt.Fprintln(p.w, "none")
		return
	}
	for _, v := range rows {
		fmt.Fprintf(p.w, "%s | %s | %s | %s\n", v.CompanyName, v.Title, formatSalary(v.SalaryFrom, v.SalaryTo), v.URL)
	}
	fmt.Fprintf(p.w, "\nTotal: %d vacancies\n", len(rows))
}

func (p *Printer) section(title string) {
	fmt.Fprintf(p.w, "\n%s\n", p.heading.Render(title))
}

func formatSalary(from, to *float64) string {
	if from == nil && to == nil {
		return "no salary"
	}
	return formatBound(from) + " - " + formatBound(to)
}

func formatBound(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
