package profit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"project-tracker/internal/models"
)

type fakeStore struct {
	projects     map[uint][]models.Project     // keyed by user id
	stakeholders map[uint][]models.Stakeholder // keyed by project id
	expenses     map[uint][]models.Transaction // keyed by project id
	err          error
}

func (f *fakeStore) ProjectsByUser(_ context.Context, userID uint) ([]models.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.projects[userID], nil
}

func (f *fakeStore) StakeholdersByProject(_ context.Context, projectID uint) ([]models.Stakeholder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stakeholders[projectID], nil
}

func (f *fakeStore) ExpensesByProject(_ context.Context, projectID uint) ([]models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.expenses[projectID], nil
}

func project(id uint, value float64) models.Project {
	return models.Project{Model: gorm.Model{ID: id}, Name: "Project", Value: value, UserID: 1}
}

func stakeholder(id uint, name string, share int) models.Stakeholder {
	return models.Stakeholder{Model: gorm.Model{ID: id}, Name: name, Share: share}
}

func expense(id uint, amount float64) models.Transaction {
	return models.Transaction{
		Model:  gorm.Model{ID: id, CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		Amount: amount,
		Type:   models.TypeExpense,
	}
}

func TestDistributeProfits_CompleteAllocation(t *testing.T) {
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 1000)}},
		stakeholders: map[uint][]models.Stakeholder{10: {
			stakeholder(1, "Alice", 60),
			stakeholder(2, "Bob", 40),
		}},
		expenses: map[uint][]models.Transaction{10: {
			expense(100, 200),
			expense(101, 100),
		}},
	}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, uint(10), report.Project.ID)
	assert.Equal(t, 300.0, report.Project.TotalExpenditure)
	assert.Equal(t, "700.00", report.Project.Profit)
	assert.Equal(t, 100, report.TotalShare)

	require.Len(t, report.StakeholderProfits, 2)
	assert.Equal(t, StakeholderProfit{Name: "Alice", Share: 60, Profit: "420.00"}, report.StakeholderProfits[0])
	assert.Equal(t, StakeholderProfit{Name: "Bob", Share: 40, Profit: "280.00"}, report.StakeholderProfits[1])

	require.Len(t, report.Expenditures, 2)
	assert.Equal(t, uint(100), report.Expenditures[0].ID)
	assert.Equal(t, 200.0, report.Expenditures[0].Amount)
	assert.Equal(t, "", report.Expenditures[0].Description)
	assert.False(t, report.Expenditures[0].Date.IsZero())
}

func TestDistributeProfits_IncompleteAllocationGates(t *testing.T) {
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 1000)}},
		stakeholders: map[uint][]models.Stakeholder{10: {
			stakeholder(1, "Alice", 60),
			stakeholder(2, "Bob", 30),
		}},
		expenses: map[uint][]models.Transaction{10: {
			expense(100, 200),
			expense(101, 100),
		}},
	}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, 90, report.TotalShare)
	assert.Equal(t, "0.00", report.Project.Profit)
	for _, sp := range report.StakeholderProfits {
		assert.Equal(t, "0.00", sp.Profit)
	}
	// expenditure figures stay real even when the gate fails
	assert.Equal(t, 300.0, report.Project.TotalExpenditure)
}

func TestDistributeProfits_OverAllocationGates(t *testing.T) {
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 500)}},
		stakeholders: map[uint][]models.Stakeholder{10: {
			stakeholder(1, "Alice", 60),
			stakeholder(2, "Bob", 50),
		}},
		expenses: map[uint][]models.Transaction{},
	}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, 110, reports[0].TotalShare)
	assert.Equal(t, "0.00", reports[0].Project.Profit)
	for _, sp := range reports[0].StakeholderProfits {
		assert.Equal(t, "0.00", sp.Profit)
	}
}

func TestDistributeProfits_SkipsProjectsWithoutStakeholders(t *testing.T) {
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 1000), project(11, 500)}},
		stakeholders: map[uint][]models.Stakeholder{
			11: {stakeholder(1, "Alice", 100)},
		},
		expenses: map[uint][]models.Transaction{},
	}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, uint(11), reports[0].Project.ID)
}

func TestDistributeProfits_FixedTwoDecimalOutput(t *testing.T) {
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 66.66)}},
		stakeholders: map[uint][]models.Stakeholder{10: {
			stakeholder(1, "Alice", 50),
			stakeholder(2, "Bob", 50),
		}},
		expenses: map[uint][]models.Transaction{},
	}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, "33.33", reports[0].StakeholderProfits[0].Profit)
	assert.Equal(t, "33.33", reports[0].StakeholderProfits[1].Profit)
}

func TestDistributeProfits_RoundsHalfAwayFromZero(t *testing.T) {
	// profit 10.05, split 50/50: each half is 5.025 and must render 5.03
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 10.05)}},
		stakeholders: map[uint][]models.Stakeholder{10: {
			stakeholder(1, "Alice", 50),
			stakeholder(2, "Bob", 50),
		}},
		expenses: map[uint][]models.Transaction{},
	}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, "5.03", reports[0].StakeholderProfits[0].Profit)
	assert.Equal(t, "5.03", reports[0].StakeholderProfits[1].Profit)
}

func TestDistributeProfits_NegativeProfitNotClamped(t *testing.T) {
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 100)}},
		stakeholders: map[uint][]models.Stakeholder{10: {
			stakeholder(1, "Alice", 100),
		}},
		expenses: map[uint][]models.Transaction{10: {expense(100, 250)}},
	}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	assert.Equal(t, "-150.00", reports[0].Project.Profit)
	assert.Equal(t, "-150.00", reports[0].StakeholderProfits[0].Profit)
}

func TestDistributeProfits_Idempotent(t *testing.T) {
	store := &fakeStore{
		projects: map[uint][]models.Project{1: {project(10, 1000)}},
		stakeholders: map[uint][]models.Stakeholder{10: {
			stakeholder(1, "Alice", 60),
			stakeholder(2, "Bob", 40),
		}},
		expenses: map[uint][]models.Transaction{10: {expense(100, 200)}},
	}

	engine := NewEngine(store)
	first, err := engine.DistributeProfits(context.Background(), 1)
	require.NoError(t, err)
	second, err := engine.DistributeProfits(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDistributeProfits_NoProjects(t *testing.T) {
	store := &fakeStore{projects: map[uint][]models.Project{}}

	reports, err := NewEngine(store).DistributeProfits(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestDistributeProfits_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("store down")
	store := &fakeStore{err: boom}

	_, err := NewEngine(store).DistributeProfits(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
