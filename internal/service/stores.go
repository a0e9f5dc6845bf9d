package service

import (
	"context"

	"kharcha/internal/models"

	"github.com/google/uuid"
)

// Store interfaces are satisfied by the concrete repositories in
// internal/repository; tests substitute in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type ExpenseStore interface {
	Create(ctx context.Context, e *models.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Expense, error)
	Update(ctx context.Context, e *models.Expense) error
	Delete(ctx context.Context, userID, id uuid.UUID) (int64, error)
	DeleteBatch(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}

type ReceiptStore interface {
	Create(ctx context.Context, rec *models.Receipt) error
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Receipt, error)
}
