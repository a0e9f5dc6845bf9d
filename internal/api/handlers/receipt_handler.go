package handlers

import (
	"errors"

	"kharcha/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	scanService *service.ScanService
	logger      *zap.Logger
}

func NewReceiptHandler(scanService *service.ScanService, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		scanService: scanService,
		logger:      logger,
	}
}

// Scan godoc
// @Summary Scan a receipt
// @Description Upload a receipt image or PDF; returns extracted text plus amount and merchant guesses for form pre-fill
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt file (jpg, jpeg, png or pdf)"
// @Security Bearer
// @Success 200 {object} dto.ScanResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/receipts/scan [post]
func (h *ReceiptHandler) Scan(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	resp, err := h.scanService.Scan(c.Context(), userID, src, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrNoTextExtracted):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "No text could be read from the receipt",
			})
		default:
			h.logger.Error("Failed to scan receipt", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to scan receipt",
			})
		}
	}

	return c.JSON(resp)
}

// List godoc
// @Summary List scanned receipts
// @Tags receipts
// @Produce json
// @Param limit query int false "Limit" default(10)
// @Param offset query int false "Offset" default(0)
// @Security Bearer
// @Success 200 {array} dto.ReceiptResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit := c.QueryInt("limit", 10)
	offset := c.QueryInt("offset", 0)

	receipts, err := h.scanService.ListReceipts(c.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list receipts",
		})
	}

	return c.JSON(receipts)
}
