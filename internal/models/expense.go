package models

import (
	"time"

	"github.com/google/uuid"
)

// Well-known expense categories. Category is free text; these are the ones the
// client renders with dedicated icons.
const (
	CategoryFood     = "food"
	CategoryUtility  = "utility"
	CategoryShopping = "shopping"
	CategoryTravel   = "travel"
	CategoryGifts    = "gifts"
	CategoryHome     = "home"
)

// Travel icon variants. Only meaningful when Category == travel.
const (
	TravelIconCar   = "car"
	TravelIconBike  = "bike"
	TravelIconTrain = "train"
	TravelIconPlane = "plane"
)

type Expense struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	Name       string    `db:"name"`
	Category   string    `db:"category"`
	Icon       string    `db:"icon"`
	Amount     float64   `db:"amount"`
	OccurredOn time.Time `db:"occurred_on"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
