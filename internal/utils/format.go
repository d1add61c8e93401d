package utils

import (
	"fmt"
	"time"

	"goldloan-backend/internal/ledger"
)

// FormatDateIndian formats a unix timestamp as DD/MM/YYYY
func FormatDateIndian(unix int64) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format("02/01/2006")
}

// FormatCurrency formats paise as a rupee amount with two decimals
func FormatCurrency(paise int64) string {
	return fmt.Sprintf("%.2f", ledger.PaiseToRupees(paise))
}

// FormatWeight formats a gram weight to three decimals
func FormatWeight(grams float64) string {
	return fmt.Sprintf("%.3f g", grams)
}
