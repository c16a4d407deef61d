package model

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when the configured locale cannot be parsed
const DefaultLocale = "en"

// NumberFormatter groups digits with the separators of a locale
type NumberFormatter struct {
	printer *message.Printer
}

// NewNumberFormatter creates a formatter for a BCP 47 locale such as "it-IT"
func NewNumberFormatter(locale string) *NumberFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &NumberFormatter{printer: message.NewPrinter(tag)}
}

// Format returns n with thousands separators, e.g. 1,234,567 or 1.234.567
func (f *NumberFormatter) Format(n int64) string {
	return f.printer.Sprintf("%d", n)
}
