package validation

import (
	"errors"
	"regexp"
)

var (
	ErrTickerEmpty        = errors.New("ticker must not be empty")
	ErrTickerTooLong      = errors.New("ticker must be at most 6 letters")
	ErrTickerInvalidChars = errors.New("ticker can only contain letters and an optional class suffix")
)

// Symbols like AAPL, MSFT, BRK.B. Case is not normalized: what the client
// submits is what gets stored.
var tickerPattern = regexp.MustCompile(`(?i)^[A-Z]{1,6}(\.[A-Z]{1,2})?$`)

func ValidateTicker(ticker string) error {
	if ticker == "" {
		return ErrTickerEmpty
	}
	if len(ticker) > 9 {
		return ErrTickerTooLong
	}
	if !tickerPattern.MatchString(ticker) {
		return ErrTickerInvalidChars
	}
	return nil
}
