// Seeds a demo user and a year's worth of expenses for dashboard demos.
// Safe to re-run: the demo user is reused if it already exists.
package main

import (
	"context"
	"log"
	"time"

	"kharcha/internal/models"
	"kharcha/internal/repository"
	"kharcha/pkg/auth"
	"kharcha/pkg/config"
	"kharcha/pkg/logger"
	"kharcha/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	demoEmail    = "demo@kharcha.local"
	demoPassword = "demo-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.RunMigrations(&cfg.Database, appLogger); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, appLogger)
	expenseRepo := repository.NewExpenseRepository(db, appLogger)

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		appLogger.Fatal("Failed to create demo user", zap.Error(err))
	}

	count, err := seedExpenses(ctx, expenseRepo, user.ID)
	if err != nil {
		appLogger.Fatal("Failed to seed expenses", zap.Error(err))
	}

	appLogger.Info("Seeding completed",
		zap.String("email", demoEmail),
		zap.Int("expenses", count),
	)
}

func ensureDemoUser(ctx context.Context, users *repository.UserRepository) (*models.User, error) {
	if existing, err := users.GetByEmail(ctx, demoEmail); err == nil {
		return existing, nil
	}

	hashed, err := auth.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Username:  "demo",
		Email:     demoEmail,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func seedExpenses(ctx context.Context, expenses *repository.ExpenseRepository, userID uuid.UUID) (int, error) {
	now := time.Now()

	type entry struct {
		name      string
		category  string
		icon      string
		amount    float64
		daysAgo   int
		monthsAgo int
	}

	entries := []entry{
		{name: "Groceries", category: models.CategoryFood, amount: 2450.00, daysAgo: 1},
		{name: "Lunch at cafe", category: models.CategoryFood, amount: 680.50, daysAgo: 3},
		{name: "Electricity bill", category: models.CategoryUtility, amount: 5120.00, daysAgo: 5},
		{name: "Internet", category: models.CategoryUtility, amount: 2200.00, daysAgo: 6},
		{name: "New shoes", category: models.CategoryShopping, amount: 3999.00, daysAgo: 10},
		{name: "Fuel", category: models.CategoryTravel, icon: models.TravelIconCar, amount: 4500.00, daysAgo: 2},
		{name: "Train ticket", category: models.CategoryTravel, icon: models.TravelIconTrain, amount: 850.00, daysAgo: 14},
		{name: "Birthday present", category: models.CategoryGifts, amount: 1500.00, daysAgo: 20},
		{name: "Curtains", category: models.CategoryHome, amount: 3200.00, monthsAgo: 1},
		{name: "Monthly groceries", category: models.CategoryFood, amount: 9800.00, monthsAgo: 1},
		{name: "Gas bill", category: models.CategoryUtility, amount: 1900.00, monthsAgo: 2},
		{name: "Flight to Karachi", category: models.CategoryTravel, icon: models.TravelIconPlane, amount: 24500.00, monthsAgo: 3},
		{name: "Streaming subscription", category: "subscriptions", amount: 1099.00, monthsAgo: 4},
	}

	for _, e := range entries {
		occurred := now.AddDate(0, -e.monthsAgo, -e.daysAgo)
		expense := &models.Expense{
			ID:         uuid.New(),
			UserID:     userID,
			Name:       e.name,
			Category:   e.category,
			Icon:       e.icon,
			Amount:     e.amount,
			OccurredOn: occurred,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := expenses.Create(ctx, expense); err != nil {
			return 0, err
		}
	}

	return len(entries), nil
}
