package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is an uploaded scan together with the text pulled out of it. The
// amount/name guesses are stored for review; the client treats them only as
// form pre-fill suggestions.
type Receipt struct {
	ID            uuid.UUID `db:"id"`
	UserID        uuid.UUID `db:"user_id"`
	FileName      string    `db:"file_name"`
	FileSize      int64     `db:"file_size"`
	FileURL       string    `db:"file_url"`
	ExtractedText string    `db:"extracted_text"`
	GuessedAmount *float64  `db:"guessed_amount"`
	GuessedName   string    `db:"guessed_name"`
	CreatedAt     time.Time `db:"created_at"`
}
