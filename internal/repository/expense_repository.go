package repository

import (
	"context"

	"kharcha/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const expenseColumns = "id, user_id, name, category, icon, amount, occurred_on, created_at, updated_at"

type ExpenseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewExpenseRepository(db *pgxpool.Pool, logger *zap.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *models.Expense) error {
	query := squirrel.Insert("expenses").
		Columns("id", "user_id", "name", "category", "icon", "amount", "occurred_on", "created_at", "updated_at").
		Values(e.ID, e.UserID, e.Name, e.Category, e.Icon, e.Amount, e.OccurredOn, e.CreatedAt, e.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	query := squirrel.Select(expenseColumns).
		From("expenses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var e models.Expense
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&e.ID, &e.UserID, &e.Name, &e.Category, &e.Icon, &e.Amount, &e.OccurredOn, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *ExpenseRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Expense, error) {
	query := squirrel.Select(expenseColumns).
		From("expenses").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("occurred_on DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Name, &e.Category, &e.Icon, &e.Amount, &e.OccurredOn, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	query := squirrel.Update("expenses").
		Set("name", e.Name).
		Set("category", e.Category).
		Set("icon", e.Icon).
		Set("amount", e.Amount).
		Set("occurred_on", e.OccurredOn).
		Set("updated_at", e.UpdatedAt).
		Where(squirrel.Eq{"id": e.ID, "user_id": e.UserID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteBatch removes the given expenses, ignoring IDs the user does not own.
func (r *ExpenseRepository) DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := squirrel.Delete("expenses").
		Where(squirrel.Eq{"id": ids, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
