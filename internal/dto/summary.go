package dto

type SummaryResponse struct {
	Total           float64            `json:"total"`
	Count           int                `json:"count"`
	CountByCategory map[string]int     `json:"count_by_category"`
	SumByCategory   map[string]float64 `json:"sum_by_category"`
	MonthlyTotals   [12]float64        `json:"monthly_totals"`
}
