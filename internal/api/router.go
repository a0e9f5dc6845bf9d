package api

import (
	"kharcha/internal/api/handlers"
	"kharcha/pkg/auth"
	"kharcha/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	expenseHandler *handlers.ExpenseHandler,
	receiptHandler *handlers.ReceiptHandler,
	jwtManager *auth.JWTManager,
	uploadsDir string,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Stored receipt scans
	app.Static("/uploads", uploadsDir)

	// Auth routes (public)
	authRoutes := app.Group("/user/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	expenses := protected.Group("/expenses")
	expenses.Get("", expenseHandler.List)
	expenses.Get("/summary", expenseHandler.Summary)
	expenses.Post("", expenseHandler.Create)
	expenses.Post("/bulk-delete", expenseHandler.BulkDelete)
	expenses.Post("/:id/duplicate", expenseHandler.Duplicate)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	receipts := protected.Group("/receipts")
	receipts.Post("/scan", receiptHandler.Scan)
	receipts.Get("", receiptHandler.List)

	return app
}
