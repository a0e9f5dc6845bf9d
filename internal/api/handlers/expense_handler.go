package handlers

import (
	"errors"
	"time"

	"kharcha/internal/dto"
	"kharcha/internal/service"
	"kharcha/internal/summary"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// List godoc
// @Summary List expenses
// @Description List the user's expenses, optionally narrowed to a date range
// @Tags expenses
// @Produce json
// @Param filter query string false "Range: day, week, month or custom"
// @Param start query string false "Custom range start (YYYY-MM-DD)"
// @Param end query string false "Custom range end (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {array} dto.ExpenseResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sel, err := parseSelection(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	expenses, err := h.expenseService.List(c.Context(), userID, sel, time.Now())
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list expenses",
		})
	}

	return c.JSON(expenses)
}

// Summary godoc
// @Summary Expense summary
// @Description Totals, per-category breakdown and current-year monthly series for the selected range
// @Tags expenses
// @Produce json
// @Param filter query string false "Range: day, week, month or custom"
// @Param start query string false "Custom range start (YYYY-MM-DD)"
// @Param end query string false "Custom range end (YYYY-MM-DD)"
// @Security Bearer
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	sel, err := parseSelection(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.expenseService.Summary(c.Context(), userID, sel, time.Now())
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build summary",
		})
	}

	return c.JSON(resp)
}

// Create godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.ExpenseRequest true "Expense"
// @Security Bearer
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.expenseService.Create(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to create expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create expense",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update godoc
// @Summary Update an expense
// @Description Replace every field of an expense except its ID and owner
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.ExpenseRequest true "Expense"
// @Security Bearer
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	var req dto.ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	resp, err := h.expenseService.Update(c.Context(), userID, id, &req)
	if err != nil {
		return h.expenseError(c, err, "Failed to update expense")
	}

	return c.JSON(resp)
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	if err := h.expenseService.Delete(c.Context(), userID, id); err != nil {
		return h.expenseError(c, err, "Failed to delete expense")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDelete godoc
// @Summary Delete several expenses at once
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "Expense IDs"
// @Security Bearer
// @Success 200 {object} dto.BulkDeleteResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/expenses/bulk-delete [post]
func (h *ExpenseHandler) BulkDelete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validateStruct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, idStr := range req.IDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid expense ID: " + idStr,
			})
		}
		ids = append(ids, id)
	}

	deleted, err := h.expenseService.DeleteBatch(c.Context(), userID, ids)
	if err != nil {
		h.logger.Error("Failed to bulk delete expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete expenses",
		})
	}

	return c.JSON(dto.BulkDeleteResponse{Deleted: deleted})
}

// Duplicate godoc
// @Summary Duplicate an expense
// @Description Copy an expense with a "(Copy)" name suffix, dated now
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 201 {object} dto.ExpenseResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id}/duplicate [post]
func (h *ExpenseHandler) Duplicate(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid expense ID",
		})
	}

	resp, err := h.expenseService.Duplicate(c.Context(), userID, id)
	if err != nil {
		return h.expenseError(c, err, "Failed to duplicate expense")
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ExpenseHandler) expenseError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrExpenseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Expense not found",
		})
	case errors.Is(err, service.ErrInvalidAmount):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		h.logger.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msg,
		})
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

// parseSelection reads the dashboard's date-range query parameters. Unknown
// or missing filter values keep every record.
func parseSelection(c *fiber.Ctx) (summary.Selection, error) {
	var q dto.ExpenseListQuery
	if err := c.QueryParser(&q); err != nil {
		return summary.Selection{}, err
	}
	if err := validateStruct(&q); err != nil {
		return summary.Selection{}, err
	}

	sel := summary.Selection{Kind: summary.FilterKind(q.Filter)}
	if q.Start != "" {
		start, err := time.ParseInLocation("2006-01-02", q.Start, time.Local)
		if err != nil {
			return summary.Selection{}, err
		}
		sel.Start = &start
	}
	if q.End != "" {
		end, err := time.ParseInLocation("2006-01-02", q.End, time.Local)
		if err != nil {
			return summary.Selection{}, err
		}
		sel.End = &end
	}
	return sel, nil
}
