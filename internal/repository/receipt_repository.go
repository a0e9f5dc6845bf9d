package repository

import (
	"context"

	"kharcha/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const receiptColumns = "id, user_id, file_name, file_size, file_url, extracted_text, guessed_amount, guessed_name, created_at"

type ReceiptRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReceiptRepository(db *pgxpool.Pool, logger *zap.Logger) *ReceiptRepository {
	return &ReceiptRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ReceiptRepository) Create(ctx context.Context, rec *models.Receipt) error {
	query := squirrel.Insert("receipts").
		Columns("id", "user_id", "file_name", "file_size", "file_url", "extracted_text", "guessed_amount", "guessed_name", "created_at").
		Values(rec.ID, rec.UserID, rec.FileName, rec.FileSize, rec.FileURL, rec.ExtractedText, rec.GuessedAmount, rec.GuessedName, rec.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ReceiptRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Receipt, error) {
	query := squirrel.Select(receiptColumns).
		From("receipts").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
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

	var receipts []models.Receipt
	for rows.Next() {
		var rec models.Receipt
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.FileName, &rec.FileSize, &rec.FileURL, &rec.ExtractedText, &rec.GuessedAmount, &rec.GuessedName, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		receipts = append(receipts, rec)
	}

	return receipts, rows.Err()
}
