package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kharcha/internal/dto"
	"kharcha/internal/summary"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newExpenseServiceForTest() (*ExpenseService, *fakeExpenseStore) {
	store := newFakeExpenseStore()
	return NewExpenseService(store, zap.NewNop()), store
}

func TestCreateExpenseDefaults(t *testing.T) {
	svc, store := newExpenseServiceForTest()
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), userID, &dto.ExpenseRequest{
		Name:   "  Chai  ",
		Amount: 150,
	})
	require.NoError(t, err)

	assert.Equal(t, "Chai", resp.Name)
	assert.Equal(t, "food", resp.Category)
	assert.Empty(t, resp.Icon)
	assert.Equal(t, 150.0, resp.Amount)
	assert.Len(t, store.expenses, 1)
}

func TestCreateExpenseCustomCategoryLowercased(t *testing.T) {
	svc, _ := newExpenseServiceForTest()

	resp, err := svc.Create(context.Background(), uuid.New(), &dto.ExpenseRequest{
		Name:     "Netflix",
		Category: "  Subscriptions ",
		Amount:   1099,
	})
	require.NoError(t, err)
	assert.Equal(t, "subscriptions", resp.Category)
}

func TestCreateExpenseTravelIcon(t *testing.T) {
	svc, _ := newExpenseServiceForTest()
	ctx := context.Background()
	userID := uuid.New()

	// Travel without an icon falls back to car.
	resp, err := svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Fuel", Category: "travel", Amount: 4000,
	})
	require.NoError(t, err)
	assert.Equal(t, "car", resp.Icon)

	// Explicit travel icon is kept.
	resp, err = svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Ticket", Category: "travel", Icon: "train", Amount: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, "train", resp.Icon)

	// Icon is dropped for non-travel categories.
	resp, err = svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Lunch", Category: "food", Icon: "plane", Amount: 500,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Icon)
}

func TestCreateExpenseRejectsNegativeAmount(t *testing.T) {
	svc, store := newExpenseServiceForTest()

	_, err := svc.Create(context.Background(), uuid.New(), &dto.ExpenseRequest{
		Name: "Refund", Amount: -5,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, store.expenses)
}

func TestCreateExpenseParsesOccurredOn(t *testing.T) {
	svc, _ := newExpenseServiceForTest()

	resp, err := svc.Create(context.Background(), uuid.New(), &dto.ExpenseRequest{
		Name: "Groceries", Amount: 100, OccurredOn: "2025-02-14",
	})
	require.NoError(t, err)

	parsed, err := time.Parse(time.RFC3339, resp.OccurredOn)
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.February, parsed.Month())
	assert.Equal(t, 14, parsed.Day())
}

func TestUpdateExpenseReplacesFields(t *testing.T) {
	svc, _ := newExpenseServiceForTest()
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Lunch", Category: "food", Amount: 500,
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	updated, err := svc.Update(ctx, userID, id, &dto.ExpenseRequest{
		Name: "Dinner", Category: "travel", Icon: "bike", Amount: 750,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Dinner", updated.Name)
	assert.Equal(t, "travel", updated.Category)
	assert.Equal(t, "bike", updated.Icon)
	assert.Equal(t, 750.0, updated.Amount)
}

func TestUpdateExpenseEnforcesOwnership(t *testing.T) {
	svc, _ := newExpenseServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, uuid.New(), &dto.ExpenseRequest{
		Name: "Lunch", Amount: 500,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, uuid.New(), uuid.MustParse(created.ID), &dto.ExpenseRequest{
		Name: "Hijacked", Amount: 1,
	})
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}

func TestUpdateExpensePropagatesStoreErrors(t *testing.T) {
	svc, store := newExpenseServiceForTest()
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, &dto.ExpenseRequest{Name: "Lunch", Amount: 500})
	require.NoError(t, err)

	store.getErr = errors.New("connection refused")

	_, err = svc.Update(ctx, userID, uuid.MustParse(created.ID), &dto.ExpenseRequest{
		Name: "Dinner", Amount: 750,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExpenseNotFound)

	_, err = svc.Duplicate(ctx, userID, uuid.MustParse(created.ID))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExpenseNotFound)
}

func TestDeleteExpense(t *testing.T) {
	svc, store := newExpenseServiceForTest()
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, &dto.ExpenseRequest{Name: "Lunch", Amount: 500})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, uuid.MustParse(created.ID)))
	assert.Empty(t, store.expenses)

	assert.ErrorIs(t, svc.Delete(ctx, userID, uuid.MustParse(created.ID)), ErrExpenseNotFound)
}

func TestDeleteBatchSkipsForeignRows(t *testing.T) {
	svc, store := newExpenseServiceForTest()
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	mine, err := svc.Create(ctx, owner, &dto.ExpenseRequest{Name: "Mine", Amount: 1})
	require.NoError(t, err)
	theirs, err := svc.Create(ctx, other, &dto.ExpenseRequest{Name: "Theirs", Amount: 2})
	require.NoError(t, err)

	deleted, err := svc.DeleteBatch(ctx, owner, []uuid.UUID{
		uuid.MustParse(mine.ID), uuid.MustParse(theirs.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, store.expenses, 1)
}

func TestDuplicateExpense(t *testing.T) {
	svc, store := newExpenseServiceForTest()
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Fuel", Category: "travel", Icon: "car", Amount: 4500, OccurredOn: "2025-01-01",
	})
	require.NoError(t, err)

	copied, err := svc.Duplicate(ctx, userID, uuid.MustParse(created.ID))
	require.NoError(t, err)

	assert.Equal(t, "Fuel (Copy)", copied.Name)
	assert.Equal(t, created.Category, copied.Category)
	assert.Equal(t, created.Icon, copied.Icon)
	assert.Equal(t, created.Amount, copied.Amount)
	assert.NotEqual(t, created.ID, copied.ID)
	assert.NotEqual(t, created.OccurredOn, copied.OccurredOn)
	assert.Len(t, store.expenses, 2)
}

func TestListFiltersByRange(t *testing.T) {
	svc, _ := newExpenseServiceForTest()
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	_, err := svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Today", Amount: 1, OccurredOn: now.Format(time.RFC3339),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Last year", Amount: 2, OccurredOn: now.AddDate(-1, 0, 0).Format(time.RFC3339),
	})
	require.NoError(t, err)

	got, err := svc.List(ctx, userID, summary.Selection{Kind: summary.FilterDay}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Today", got[0].Name)

	all, err := svc.List(ctx, userID, summary.Selection{}, now)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSummaryAggregatesFilteredSubset(t *testing.T) {
	svc, _ := newExpenseServiceForTest()
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	_, err := svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Groceries", Category: "food", Amount: 100, OccurredOn: now.Format(time.RFC3339),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, &dto.ExpenseRequest{
		Name: "Old bill", Category: "utility", Amount: 999, OccurredOn: now.AddDate(0, -6, 0).Format(time.RFC3339),
	})
	require.NoError(t, err)

	resp, err := svc.Summary(ctx, userID, summary.Selection{Kind: summary.FilterDay}, now)
	require.NoError(t, err)

	assert.Equal(t, 100.0, resp.Total)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, map[string]int{"food": 1}, resp.CountByCategory)
	assert.Equal(t, map[string]float64{"food": 100}, resp.SumByCategory)
}
