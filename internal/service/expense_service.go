package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"kharcha/internal/dto"
	"kharcha/internal/models"
	"kharcha/internal/summary"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidAmount   = errors.New("amount must be a finite non-negative number")
)

type ExpenseService struct {
	expenses ExpenseStore
	logger   *zap.Logger
}

func NewExpenseService(expenses ExpenseStore, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		expenses: expenses,
		logger:   logger,
	}
}

func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	now := time.Now()

	e := &models.Expense{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyRequest(e, req, now); err != nil {
		return nil, err
	}

	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("Expense created",
		zap.String("expense_id", e.ID.String()),
		zap.String("category", e.Category),
	)

	resp := toExpenseResponse(*e)
	return &resp, nil
}

// Update replaces every field except the ID and owner.
func (s *ExpenseService) Update(ctx context.Context, userID, id uuid.UUID, req *dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := applyRequest(e, req, e.OccurredOn); err != nil {
		return nil, err
	}
	e.UpdatedAt = time.Now()

	if err := s.expenses.Update(ctx, e); err != nil {
		return nil, err
	}

	resp := toExpenseResponse(*e)
	return &resp, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	deleted, err := s.expenses.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *ExpenseService) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	deleted, err := s.expenses.DeleteBatch(ctx, userID, ids)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Expenses bulk deleted",
		zap.String("user_id", userID.String()),
		zap.Int64("count", deleted),
	)
	return deleted, nil
}

// Duplicate copies an expense with a "(Copy)" name suffix, dated now.
func (s *ExpenseService) Duplicate(ctx context.Context, userID, id uuid.UUID) (*dto.ExpenseResponse, error) {
	e, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	copied := &models.Expense{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       e.Name + " (Copy)",
		Category:   e.Category,
		Icon:       e.Icon,
		Amount:     e.Amount,
		OccurredOn: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.expenses.Create(ctx, copied); err != nil {
		return nil, err
	}

	resp := toExpenseResponse(*copied)
	return &resp, nil
}

// List returns the user's expenses newest first, narrowed to the selected
// date range.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID, sel summary.Selection, now time.Time) ([]dto.ExpenseResponse, error) {
	expenses, err := s.expenses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := summary.Filter(expenses, sel, now)
	responses := make([]dto.ExpenseResponse, 0, len(filtered))
	for _, e := range filtered {
		responses = append(responses, toExpenseResponse(e))
	}
	return responses, nil
}

// Summary aggregates the filtered subset for the dashboard cards and charts.
func (s *ExpenseService) Summary(ctx context.Context, userID uuid.UUID, sel summary.Selection, now time.Time) (*dto.SummaryResponse, error) {
	expenses, err := s.expenses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := summary.Filter(expenses, sel, now)
	totals := summary.Aggregate(filtered, now)

	return &dto.SummaryResponse{
		Total:           totals.Total,
		Count:           len(filtered),
		CountByCategory: totals.CountByCategory,
		SumByCategory:   totals.SumByCategory,
		MonthlyTotals:   totals.MonthlyTotals,
	}, nil
}

// getOwned loads an expense and checks it belongs to the user. A missing row
// and a foreign row both read as not found; other store errors propagate.
func (s *ExpenseService) getOwned(ctx context.Context, userID, id uuid.UUID) (*models.Expense, error) {
	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("load expense: %w", err)
	}
	if e.UserID != userID {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// applyRequest normalizes the request fields onto the record: the amount must
// be finite and non-negative, an empty category falls back to food, and the
// travel icon is only kept for travel expenses.
func applyRequest(e *models.Expense, req *dto.ExpenseRequest, defaultOccurredOn time.Time) error {
	if req.Amount < 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return ErrInvalidAmount
	}

	category := strings.ToLower(strings.TrimSpace(req.Category))
	if category == "" {
		category = models.CategoryFood
	}

	icon := ""
	if category == models.CategoryTravel {
		icon = req.Icon
		if icon == "" {
			icon = models.TravelIconCar
		}
	}

	occurredOn := defaultOccurredOn
	if req.OccurredOn != "" {
		parsed, err := parseDateTime(req.OccurredOn)
		if err != nil {
			return err
		}
		occurredOn = parsed
	}

	e.Name = strings.TrimSpace(req.Name)
	e.Category = category
	e.Icon = icon
	e.Amount = req.Amount
	e.OccurredOn = occurredOn
	return nil
}

// parseDateTime accepts RFC 3339 timestamps or bare calendar dates.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

func toExpenseResponse(e models.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:         e.ID.String(),
		Name:       e.Name,
		Category:   e.Category,
		Icon:       e.Icon,
		Amount:     e.Amount,
		OccurredOn: e.OccurredOn.Format(time.RFC3339),
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}
