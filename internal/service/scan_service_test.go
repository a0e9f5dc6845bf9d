package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestScanStoresFileAndGuesses(t *testing.T) {
	dir := t.TempDir()
	store := &fakeReceiptStore{}
	extractor := &fakeExtractor{text: "1234567890\nSTARBUCKS\nTOTAL 500"}
	svc := NewScanService(store, extractor, dir, zap.NewNop())
	userID := uuid.New()

	resp, err := svc.Scan(context.Background(), userID, strings.NewReader("fake image bytes"), "receipt.jpg")
	require.NoError(t, err)

	require.NotNil(t, resp.Amount)
	assert.Equal(t, 500.0, *resp.Amount)
	assert.Equal(t, "STARBUCKS", resp.Name)
	assert.Equal(t, extractor.text, resp.ParsedText)

	// The upload landed on disk under a generated name.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".jpg", filepath.Ext(entries[0].Name()))

	// And the receipt record was persisted with the guesses.
	require.Len(t, store.receipts, 1)
	rec := store.receipts[0]
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, "receipt.jpg", rec.FileName)
	assert.Equal(t, int64(len("fake image bytes")), rec.FileSize)
	require.NotNil(t, rec.GuessedAmount)
	assert.Equal(t, 500.0, *rec.GuessedAmount)
	assert.Equal(t, "STARBUCKS", rec.GuessedName)
}

func TestScanNoGuessIsNotAnError(t *testing.T) {
	store := &fakeReceiptStore{}
	extractor := &fakeExtractor{text: "SUBTOTAL\nPOS"}
	svc := NewScanService(store, extractor, t.TempDir(), zap.NewNop())

	resp, err := svc.Scan(context.Background(), uuid.New(), strings.NewReader("x"), "receipt.png")
	require.NoError(t, err)

	assert.Nil(t, resp.Amount)
	assert.Empty(t, resp.Name)
	require.Len(t, store.receipts, 1)
	assert.Nil(t, store.receipts[0].GuessedAmount)
}

func TestScanExtractionFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	store := &fakeReceiptStore{}
	extractor := &fakeExtractor{err: errors.New("provider down")}
	svc := NewScanService(store, extractor, dir, zap.NewNop())

	_, err := svc.Scan(context.Background(), uuid.New(), strings.NewReader("x"), "receipt.jpg")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, store.receipts)
}

func TestListReceipts(t *testing.T) {
	store := &fakeReceiptStore{}
	extractor := &fakeExtractor{text: "KFC\nTOTAL 750"}
	svc := NewScanService(store, extractor, t.TempDir(), zap.NewNop())
	userID := uuid.New()

	_, err := svc.Scan(context.Background(), userID, strings.NewReader("x"), "a.jpg")
	require.NoError(t, err)
	_, err = svc.Scan(context.Background(), uuid.New(), strings.NewReader("y"), "b.jpg")
	require.NoError(t, err)

	got, err := svc.ListReceipts(context.Background(), userID, 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.jpg", got[0].FileName)
}

func TestListReceiptsClampsPaging(t *testing.T) {
	store := &fakeReceiptStore{}
	svc := NewScanService(store, &fakeExtractor{}, t.TempDir(), zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.ListReceipts(ctx, userID, -1, -5)
	require.NoError(t, err)
	assert.Equal(t, 10, store.gotLimit)
	assert.Equal(t, 0, store.gotOffset)

	_, err = svc.ListReceipts(ctx, userID, 10000, 20)
	require.NoError(t, err)
	assert.Equal(t, 100, store.gotLimit)
	assert.Equal(t, 20, store.gotOffset)
}
