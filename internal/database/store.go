package database

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-tracker/internal/models"
	"project-tracker/internal/shares"
)

// Store is the repository-style access layer consumed by the engines.
// It satisfies audit.Sink, notify.Sink, shares.Store and profit.Store.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ProjectsByUser(ctx context.Context, userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&projects).Error
	return projects, err
}

func (s *Store) StakeholdersByProject(ctx context.Context, projectID uint) ([]models.Stakeholder, error) {
	var stakeholders []models.Stakeholder
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&stakeholders).Error
	return stakeholders, err
}

func (s *Store) ExpensesByProject(ctx context.Context, projectID uint) ([]models.Transaction, error) {
	var expenses []models.Transaction
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND type = ?", projectID, models.TypeExpense).
		Find(&expenses).Error
	return expenses, err
}

// StakeholderStats summarizes a user's stakeholders. "New" counts rows
// created within the last seven days.
type StakeholderStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
	New      int64 `json:"new"`
}

func (s *Store) StakeholderStats(ctx context.Context, userID uint) (StakeholderStats, error) {
	var stats StakeholderStats
	counts := []struct {
		dest *int64
		cond string
		args []any
	}{
		{&stats.Total, "user_id = ?", []any{userID}},
		{&stats.Active, "user_id = ? AND is_active = true", []any{userID}},
		{&stats.Inactive, "user_id = ? AND is_active = false", []any{userID}},
		{&stats.New, "user_id = ? AND created_at >= ?", []any{userID, time.Now().AddDate(0, 0, -7)}},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Model(&models.Stakeholder{}).
			Where(c.cond, c.args...).
			Count(c.dest).Error; err != nil {
			return StakeholderStats{}, err
		}
	}
	return stats, nil
}

func (s *Store) CreateChangeLog(ctx context.Context, entry *models.ChangeLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

// CreateStakeholder inserts a stakeholder after re-checking the share
// ceiling inside one transaction. The parent project row is locked FOR
// UPDATE so two concurrent inserts for the same project serialize
// instead of both reading the old sum and jointly exceeding 100%.
func (s *Store) CreateStakeholder(ctx context.Context, st *models.Stakeholder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, st.ProjectID); err != nil {
			return err
		}
		if err := shares.NewValidator(&Store{db: tx}).Check(ctx, st.ProjectID, st.Share, 0); err != nil {
			return err
		}
		return tx.Create(st).Error
	})
}

// UpdateStakeholder saves an updated stakeholder under the same lock,
// excluding the row itself from the recomputed share sum.
func (s *Store) UpdateStakeholder(ctx context.Context, st *models.Stakeholder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockProject(tx, st.ProjectID); err != nil {
			return err
		}
		if err := shares.NewValidator(&Store{db: tx}).Check(ctx, st.ProjectID, st.Share, st.ID); err != nil {
			return err
		}
		return tx.Save(st).Error
	})
}

func lockProject(tx *gorm.DB, projectID uint) error {
	var project models.Project
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&project, projectID).Error
}
