// Package profit computes per-project profit distribution reports from
// project value, expense transactions and stakeholder equity shares.
// The engine is read only: every call recomputes from current store
// state and nothing is persisted.
package profit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"project-tracker/internal/models"
)

// Store provides the read operations the engine aggregates over.
type Store interface {
	ProjectsByUser(ctx context.Context, userID uint) ([]models.Project, error)
	StakeholdersByProject(ctx context.Context, projectID uint) ([]models.Stakeholder, error)
	ExpensesByProject(ctx context.Context, projectID uint) ([]models.Transaction, error)
}

type ProjectSummary struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	Value            float64 `json:"value"`
	TotalExpenditure float64 `json:"totalExpenditure"`
	Profit           string  `json:"profit"`
}

type ExpenseLine struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

type StakeholderProfit struct {
	Name   string `json:"name"`
	Share  int    `json:"share"`
	Profit string `json:"profit"`
}

// Report is the distribution result for one project. TotalShare is the
// raw share sum so callers can tell a complete allocation (100) from an
// under- or over-allocated one.
type Report struct {
	Project            ProjectSummary      `json:"project"`
	Expenditures       []ExpenseLine       `json:"expenditures"`
	StakeholderProfits []StakeholderProfit `json:"stakeholderProfits"`
	TotalShare         int                 `json:"totalShare"`
}

// zeroAmount is reported for every profit figure when the distribution
// gate fails, signalling an incomplete or invalid allocation.
const zeroAmount = "0.00"

type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// DistributeProfits builds one report per project owned by userID that
// has at least one stakeholder. Projects without stakeholders are
// excluded entirely. Stakeholder profit is allocated only when the
// share sum is exactly 100; otherwise every profit figure is "0.00".
func (e *Engine) DistributeProfits(ctx context.Context, userID uint) ([]Report, error) {
	projects, err := e.store.ProjectsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}

	reports := make([]Report, 0, len(projects))
	for _, project := range projects {
		report, ok, err := e.projectReport(ctx, project)
		if err != nil {
			return nil, err
		}
		if ok {
			reports = append(reports, report)
		}
	}
	return reports, nil
}

func (e *Engine) projectReport(ctx context.Context, project models.Project) (Report, bool, error) {
	stakeholders, err := e.store.StakeholdersByProject(ctx, project.ID)
	if err != nil {
		return Report{}, false, fmt.Errorf("fetch stakeholders of project %d: %w", project.ID, err)
	}
	if len(stakeholders) == 0 {
		return Report{}, false, nil
	}

	expenses, err := e.store.ExpensesByProject(ctx, project.ID)
	if err != nil {
		return Report{}, false, fmt.Errorf("fetch expenses of project %d: %w", project.ID, err)
	}

	totalExpenditure := decimal.Zero
	lines := make([]ExpenseLine, 0, len(expenses))
	for _, t := range expenses {
		totalExpenditure = totalExpenditure.Add(decimal.NewFromFloat(t.Amount))
		lines = append(lines, ExpenseLine{
			ID:          t.ID,
			Description: t.Description,
			Amount:      t.Amount,
			Date:        t.CreatedAt,
		})
	}

	// may be negative; never clamped
	profit := decimal.NewFromFloat(project.Value).Sub(totalExpenditure)

	totalShare := 0
	for _, s := range stakeholders {
		totalShare += s.Share
	}
	distribute := totalShare == 100

	stakeholderProfits := make([]StakeholderProfit, 0, len(stakeholders))
	for _, s := range stakeholders {
		allocated := zeroAmount
		if distribute {
			allocated = profit.
				Mul(decimal.NewFromInt(int64(s.Share))).
				Div(decimal.NewFromInt(100)).
				StringFixed(2)
		}
		stakeholderProfits = append(stakeholderProfits, StakeholderProfit{
			Name:   s.Name,
			Share:  s.Share,
			Profit: allocated,
		})
	}

	projectProfit := zeroAmount
	if distribute {
		projectProfit = profit.StringFixed(2)
	}

	expenditure, _ := totalExpenditure.Float64()
	return Report{
		Project: ProjectSummary{
			ID:               project.ID,
			Name:             project.Name,
			Value:            project.Value,
			TotalExpenditure: expenditure,
			Profit:           projectProfit,
		},
		Expenditures:       lines,
		StakeholderProfits: stakeholderProfits,
		TotalShare:         totalShare,
	}, true, nil
}
