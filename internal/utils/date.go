package utils

import (
	"errors"
	"strings"
	"time"
)

// dateTokens maps the front-end's formatting tokens onto Go's reference
// layout.  Longer tokens come first so "YYYY" wins over "YY".
var dateTokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// dateLayouts lists the input formats accepted by FormatDate, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate parses value and renders it in UTC using a token-style format
// (e.g. "DD/MM/YYYY HH:mm").  An empty format falls back to "DD/MM/YYYY".
func FormatDate(value, format string) (string, error) {
	if value == "" {
		return "", errors.New("the 'date' parameter is required")
	}
	var (
		t   time.Time
		err error
	)
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, value); err == nil {
			break
		}
	}
	if err != nil {
		return "", errors.New("invalid date provided")
	}
	if format == "" {
		format = "DD/MM/YYYY"
	}
	return t.UTC().Format(dateTokens.Replace(format)), nil
}
