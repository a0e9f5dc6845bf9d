package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"kharcha/internal/dto"
	"kharcha/internal/models"
	"kharcha/internal/receipt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TextExtractor pulls raw text out of a stored receipt file. Satisfied by
// OCRService; tests use a canned implementation.
type TextExtractor interface {
	ExtractText(ctx context.Context, filePath string) (string, error)
}

// ScanService owns the receipt flow: store the upload, extract its text,
// interpret it, and hand the guess back for form pre-fill.
type ScanService struct {
	receipts  ReceiptStore
	extractor TextExtractor
	uploadDir string
	logger    *zap.Logger
}

func NewScanService(receipts ReceiptStore, extractor TextExtractor, uploadDir string, logger *zap.Logger) *ScanService {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		logger.Warn("Failed to create upload directory", zap.Error(err))
	}

	return &ScanService{
		receipts:  receipts,
		extractor: extractor,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// Scan saves the uploaded file, runs text extraction and interpretation, and
// records the receipt. The returned guess fields are unset when the
// interpreter found nothing usable; that is not an error.
func (s *ScanService) Scan(ctx context.Context, userID uuid.UUID, file io.Reader, fileName string) (*dto.ScanResponse, error) {
	fileID := uuid.New()
	storedName := fileID.String() + filepath.Ext(fileName)
	filePath := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	fileSize, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	text, err := s.extractor.ExtractText(ctx, filePath)
	if err != nil {
		os.Remove(filePath)
		return nil, err
	}

	guess := receipt.Interpret(text)

	rec := &models.Receipt{
		ID:            fileID,
		UserID:        userID,
		FileName:      fileName,
		FileSize:      fileSize,
		FileURL:       "/uploads/" + storedName,
		ExtractedText: guess.RawText,
		GuessedAmount: guess.Amount,
		GuessedName:   guess.Merchant,
		CreatedAt:     time.Now(),
	}

	if err := s.receipts.Create(ctx, rec); err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to create receipt record: %w", err)
	}

	s.logger.Info("Receipt scanned",
		zap.String("receipt_id", rec.ID.String()),
		zap.Bool("amount_found", guess.Amount != nil),
		zap.Bool("name_found", guess.Merchant != ""),
	)

	return &dto.ScanResponse{
		Receipt:    toReceiptResponse(*rec),
		ParsedText: guess.RawText,
		Amount:     guess.Amount,
		Name:       guess.Merchant,
	}, nil
}

const (
	defaultReceiptPageSize = 10
	maxReceiptPageSize     = 100
)

// ListReceipts pages through the user's scans. Out-of-range limit and offset
// values are clamped rather than rejected.
func (s *ScanService) ListReceipts(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.ReceiptResponse, error) {
	if limit <= 0 {
		limit = defaultReceiptPageSize
	}
	if limit > maxReceiptPageSize {
		limit = maxReceiptPageSize
	}
	if offset < 0 {
		offset = 0
	}

	receipts, err := s.receipts.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReceiptResponse, 0, len(receipts))
	for _, rec := range receipts {
		responses = append(responses, toReceiptResponse(rec))
	}
	return responses, nil
}

func toReceiptResponse(rec models.Receipt) dto.ReceiptResponse {
	return dto.ReceiptResponse{
		ID:            rec.ID.String(),
		FileName:      rec.FileName,
		FileSize:      rec.FileSize,
		FileURL:       rec.FileURL,
		ExtractedText: rec.ExtractedText,
		GuessedAmount: rec.GuessedAmount,
		GuessedName:   rec.GuessedName,
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
	}
}
