package dto

type ReceiptResponse struct {
	ID            string   `json:"id"`
	FileName      string   `json:"file_name"`
	FileSize      int64    `json:"file_size"`
	FileURL       string   `json:"file_url"`
	ExtractedText string   `json:"extracted_text,omitempty"`
	GuessedAmount *float64 `json:"guessed_amount,omitempty"`
	GuessedName   string   `json:"guessed_name,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// ScanResponse pre-fills the expense form after a receipt upload. Amount and
// name are omitted when the interpreter found nothing usable.
type ScanResponse struct {
	Receipt    ReceiptResponse `json:"receipt"`
	ParsedText string          `json:"parsed_text"`
	Amount     *float64        `json:"amount,omitempty"`
	Name       string          `json:"name,omitempty"`
}
