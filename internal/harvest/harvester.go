package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amishk599/vacancydb/internal/model"
)

// Summary counts what one Run stored.
type Summary struct {
	Companies int
	Vacancies int
}

// Harvester owns the collect pipeline for a list of employers:
// fetch employer → store company → fetch vacancies → store vacancies.
type Harvester struct {
	collector model.Collector
	store     model.VacancyWriter
	logger    *slog.Logger
}

// NewHarvester creates a harvester wired with its collector and store.
func NewHarvester(collector model.Collector, store model.VacancyWriter, logger *slog.Logger) *Harvester {
	return &Harvester{
		collector: collector,
		store:     store,
		logger:    logger,
	}
}

// Run harvests each employer in order. The first failure aborts the run; the
// summary still reports what was stored before it.
func (h *Harvester) Run(ctx context.Context, employerIDs []int) (Summary, error) {
	logger := h.logger.With("run_id", uuid.NewString())
	logger.Info("starting harvest", "employers", len(employerIDs))

	var sum Summary
	for _, id := range employerIDs {
		stored, err := h.harvestEmployer(ctx, logger, id)
		if stored >= 0 {
			sum.Companies++
			sum.Vacancies += stored
		}
		if err != nil {
			return sum, fmt.Errorf("employer %d: %w", id, err)
		}
	}

	logger.Info("harvest complete", "companies", sum.Companies, "vacancies", sum.Vacancies)
	return sum, nil
}

// harvestEmployer returns the number of vacancies stored, or -1 if the
// company itself was not stored.
func (h *Harvester) harvestEmployer(ctx context.Context, logger *slog.Logger, employerID int) (int, error) {
	employer, err := h.collector.GetCompany(ctx, employerID)
	if err != nil {
		return -1, fmt.Errorf("fetching employer: %w", err)
	}
	name := model.EmployerName(employer)
	if name == "" {
		return -1, errors.New("no metadata")
	}

	companyID, err := h.store.InsertCompany(ctx, name)
	if err != nil {
		return -1, fmt.Errorf("storing company %q: %w", name, err)
	}
	logger.Debug("stored company", "employer_id", employerID, "company_id", companyID, "name", name)

	records, err := h.collector.GetVacanciesByCompany(ctx, employerID)
	if err != nil {
		return 0, fmt.Errorf("fetching vacancies: %w", err)
	}

	stored := 0
	for _, rec := range records {
		if _, err := h.store.InsertVacancy(ctx, &companyID, rec.Name, rec.SalaryFrom, rec.SalaryTo, rec.URL); err != nil {
			return stored, fmt.Errorf("storing vacancy %s: %w", rec.ID, err)
		}
		stored++
	}

	logger.Info("harvested employer",
		"employer_id", employerID,
		"company", name,
		"vacancies", stored,
	)
	return stored, nil
}
