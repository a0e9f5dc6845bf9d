package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"kharcha/pkg/config"

	"github.com/avast/retry-go"
	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoTextExtracted   = errors.New("no text extracted")
)

var supportedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// OCRService extracts raw text from uploaded receipts. Images go to the
// OCR.space HTTP API; PDFs are handled locally with go-fitz. All provider
// settings come in through the config, never from process globals.
type OCRService struct {
	cfg    *config.OCRConfig
	client *http.Client
	logger *zap.Logger
}

func NewOCRService(cfg *config.OCRConfig, logger *zap.Logger) *OCRService {
	return &OCRService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ExtractText extracts text from an image or PDF file on disk.
func (s *OCRService) ExtractText(ctx context.Context, filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	mimeType, ok := supportedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s (supported: jpg, jpeg, png, pdf)", ErrUnsupportedFormat, ext)
	}

	var text string
	var err error
	if ext == ".pdf" {
		text, err = s.extractTextFromPDF(filePath)
	} else {
		text, err = s.extractTextFromImage(ctx, filePath, mimeType)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoTextExtracted
	}

	s.logger.Info("OCR extraction completed",
		zap.String("file", filePath),
		zap.String("method", extractionMethod(ext)),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

// ocrSpaceResponse is the subset of the OCR.space reply we care about.
type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          json.RawMessage `json:"ErrorMessage"`
}

// extractTextFromImage sends the image to OCR.space as a base64 form field.
// Transient failures (network errors, 5xx) are retried.
func (s *OCRService) extractTextFromImage(ctx context.Context, filePath, mimeType string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	form := url.Values{}
	form.Set("apikey", s.cfg.APIKey)
	form.Set("base64Image", "data:"+mimeType+";base64,"+base64.StdEncoding.EncodeToString(data))
	form.Set("language", s.cfg.Language)
	form.Set("isOverlayRequired", "false")
	body := form.Encode()

	var parsed ocrSpaceResponse
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, strings.NewReader(body))
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("ocr provider returned status %d", resp.StatusCode)
			}
			if resp.StatusCode != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("ocr provider returned status %d", resp.StatusCode))
			}

			if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to decode ocr response: %w", err))
			}
			return nil
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("OCR request failed, retrying",
				zap.Uint("attempt", n+1),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("ocr request failed: %w", err)
	}

	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("ocr provider error: %s", string(parsed.ErrorMessage))
	}
	if len(parsed.ParsedResults) == 0 {
		return "", ErrNoTextExtracted
	}

	return parsed.ParsedResults[0].ParsedText, nil
}

// extractTextFromPDF extracts text from all pages using go-fitz.
func (s *OCRService) extractTextFromPDF(pdfPath string) (string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			s.logger.Warn("Failed to extract text from page",
				zap.Int("page", i+1),
				zap.String("file", pdfPath),
				zap.Error(err),
			)
			continue
		}

		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n")
		}
	}

	return textBuilder.String(), nil
}

func extractionMethod(ext string) string {
	if ext == ".pdf" {
		return "go-fitz"
	}
	return "ocr.space"
}
