package cache

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

var ttlUnits = map[string]time.Duration{
	"second":  time.Second,
	"seconds": time.Second,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"day":     24 * time.Hour,
	"days":    24 * time.Hour,
}

// ParseTTL converts a string of the form "<amount> <unit>" into a duration,
// e.g. "5 minutes" or "1 day". The amount is a non-negative integer and the
// unit is one of second(s), minute(s), hour(s) or day(s), in any case. The
// two tokens are separated by exactly one space.
func ParseTTL(s string) (time.Duration, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return 0, ttlError(ErrInvalidUnit, s, "expected \"<amount> <unit>\"")
	}

	unit, ok := ttlUnits[strings.ToLower(parts[1])]
	if !ok {
		return 0, ttlError(ErrInvalidUnit, s, fmt.Sprintf("unknown unit %q", parts[1]))
	}

	amount, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || amount < 0 {
		return 0, ttlError(ErrInvalidAmount, s, "amount must be a non-negative integer")
	}
	if amount > int64(math.MaxInt64/unit) {
		return 0, ttlError(ErrInvalidAmount, s, "duration overflows")
	}

	return time.Duration(amount) * unit, nil
}

func ttlError(sentinel error, ttl, reason string) error {
	return errors.WrapWithContext(sentinel, errors.CodeInvalidInput,
		fmt.Sprintf("ttl %q: %s", ttl, reason),
		map[string]interface{}{"ttl": ttl})
}
