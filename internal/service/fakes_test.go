package service

import (
	"context"

	"kharcha/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type fakeUserStore struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

type fakeExpenseStore struct {
	expenses map[uuid.UUID]*models.Expense
	getErr   error
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[uuid.UUID]*models.Expense)}
}

func (s *fakeExpenseStore) Create(_ context.Context, e *models.Expense) error {
	stored := *e
	s.expenses[e.ID] = &stored
	return nil
}

func (s *fakeExpenseStore) GetByID(_ context.Context, id uuid.UUID) (*models.Expense, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if e, ok := s.expenses[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeExpenseStore) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeExpenseStore) Update(_ context.Context, e *models.Expense) error {
	existing, ok := s.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return pgx.ErrNoRows
	}
	stored := *e
	s.expenses[e.ID] = &stored
	return nil
}

func (s *fakeExpenseStore) Delete(_ context.Context, userID, id uuid.UUID) (int64, error) {
	if e, ok := s.expenses[id]; ok && e.UserID == userID {
		delete(s.expenses, id)
		return 1, nil
	}
	return 0, nil
}

func (s *fakeExpenseStore) DeleteBatch(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if e, ok := s.expenses[id]; ok && e.UserID == userID {
			delete(s.expenses, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeReceiptStore struct {
	receipts  []*models.Receipt
	gotLimit  int
	gotOffset int
}

func (s *fakeReceiptStore) Create(_ context.Context, rec *models.Receipt) error {
	stored := *rec
	s.receipts = append(s.receipts, &stored)
	return nil
}

func (s *fakeReceiptStore) ListByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]models.Receipt, error) {
	s.gotLimit = limit
	s.gotOffset = offset

	var out []models.Receipt
	for _, rec := range s.receipts {
		if rec.UserID == userID {
			out = append(out, *rec)
		}
	}
	return out, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}
