package util

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// FormatPercent 부호 있는 백분율 (이미 % 단위인 값)
func FormatPercent(pct float64) string {
	return printer.Sprintf("%+.2f%%", pct)
}

// FormatWon 천 단위 구분 금액
func FormatWon(value float64) string {
	return printer.Sprintf("%.0f원", value)
}
