package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GetCurrentTime returns now in UTC truncated to microseconds, the finest
// precision every supported database keeps.
func GetCurrentTime() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func GetCurrentTimeWithFormat(format string) string {
	return time.Now().UTC().Format(format)
}

func GenerateUID() string {
	return uuid.New().String()
}

func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, char := range s {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}

// ParsePositiveInt parses s as a base-10 integer greater than zero.
func ParsePositiveInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if !IsNumeric(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
