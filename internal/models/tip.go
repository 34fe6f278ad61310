package models

import "time"

type FinancialTip struct {
	ID                 string    `json:"id" validate:"required"`
	Title              string    `json:"title" validate:"required"`
	Content            string    `json:"content" validate:"required"`
	Category           string    `json:"category"`
	Date               time.Time `json:"date"`
	ReadingTimeMinutes int       `json:"reading_time_minutes" validate:"min=0"`
}
