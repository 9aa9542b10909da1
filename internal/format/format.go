package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClock is returned when a clock string is not "M:SS" or plain seconds.
var ErrInvalidClock = errors.New("invalid clock string")

// Time renders seconds as "M:SS". Minutes are not padded; negative input renders as "0:00".
func Time(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Ordinal renders n with its English suffix ("1st", "12th", "23rd").
func Ordinal(n int) string {
	if mod100 := n % 100; mod100 >= 11 && mod100 <= 13 {
		return strconv.Itoa(n) + "th"
	}
	switch n % 10 {
	case 1:
		return strconv.Itoa(n) + "st"
	case 2:
		return strconv.Itoa(n) + "nd"
	case 3:
		return strconv.Itoa(n) + "rd"
	default:
		return strconv.Itoa(n) + "th"
	}
}

// ParseClock accepts "M:SS" or a bare number of seconds and returns total seconds.
func ParseClock(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidClock
	}

	parts := strings.Split(value, ":")
	switch len(parts) {
	case 1:
		secs, err := strconv.Atoi(parts[0])
		if err != nil || secs < 0 {
			return 0, ErrInvalidClock
		}
		return secs, nil
	case 2:
		mins, err := strconv.Atoi(parts[0])
		if err != nil || mins < 0 {
			return 0, errors.Join(ErrInvalidClock, err)
		}
		secs, err := strconv.Atoi(parts[1])
		if err != nil || secs < 0 || secs >= 60 {
			return 0, errors.Join(ErrInvalidClock, err)
		}
		return mins*60 + secs, nil
	default:
		return 0, ErrInvalidClock
	}
}
