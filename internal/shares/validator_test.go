package shares

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"project-tracker/internal/models"
)

type fakeStore struct {
	byProject map[uint][]models.Stakeholder
	err       error
}

func (f *fakeStore) StakeholdersByProject(_ context.Context, projectID uint) ([]models.Stakeholder, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byProject[projectID], nil
}

func stakeholder(id uint, share int) models.Stakeholder {
	return models.Stakeholder{Model: gorm.Model{ID: id}, Share: share}
}

func TestAvailableShare(t *testing.T) {
	cases := []struct {
		name   string
		shares []int
		want   int
	}{
		{"no stakeholders", nil, 100},
		{"partial allocation", []int{60, 30}, 10},
		{"full allocation", []int{60, 40}, 0},
		{"over allocation clamps to zero", []int{60, 50, 20}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := make([]models.Stakeholder, 0, len(tc.shares))
			for i, s := range tc.shares {
				rows = append(rows, stakeholder(uint(i+1), s))
			}
			v := NewValidator(&fakeStore{byProject: map[uint][]models.Stakeholder{7: rows}})

			got, err := v.AvailableShare(context.Background(), 7)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAvailableShare_Identity(t *testing.T) {
	// availableShare == 100 - sum(shares), clamped at 0
	store := &fakeStore{byProject: map[uint][]models.Stakeholder{
		1: {stakeholder(1, 25), stakeholder(2, 35)},
	}}
	v := NewValidator(store)

	got, err := v.AvailableShare(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 100-(25+35), got)
}

func TestCheck_AllowsUpToCeiling(t *testing.T) {
	store := &fakeStore{byProject: map[uint][]models.Stakeholder{
		1: {stakeholder(1, 60)},
	}}
	v := NewValidator(store)

	assert.NoError(t, v.Check(context.Background(), 1, 40, 0))
}

func TestCheck_RejectsExceedingShare(t *testing.T) {
	store := &fakeStore{byProject: map[uint][]models.Stakeholder{
		1: {stakeholder(1, 60), stakeholder(2, 30)},
	}}
	v := NewValidator(store)

	err := v.Check(context.Background(), 1, 20, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShareExceeded)
}

func TestCheck_ExcludesRecordBeingUpdated(t *testing.T) {
	store := &fakeStore{byProject: map[uint][]models.Stakeholder{
		1: {stakeholder(7, 60), stakeholder(8, 40)},
	}}
	v := NewValidator(store)

	// raising stakeholder 7 from 60 to 55 leaves 40+55 <= 100
	assert.NoError(t, v.Check(context.Background(), 1, 55, 7))

	// but 70 would make it 110
	err := v.Check(context.Background(), 1, 70, 7)
	assert.ErrorIs(t, err, ErrShareExceeded)
}

func TestCheck_EmptyProjectAcceptsFullShare(t *testing.T) {
	v := NewValidator(&fakeStore{byProject: map[uint][]models.Stakeholder{}})

	assert.NoError(t, v.Check(context.Background(), 9, 100, 0))
}

func TestValidator_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("store down")
	v := NewValidator(&fakeStore{err: boom})

	_, err := v.AvailableShare(context.Background(), 1)
	assert.ErrorIs(t, err, boom)

	err = v.Check(context.Background(), 1, 10, 0)
	assert.ErrorIs(t, err, boom)
}
