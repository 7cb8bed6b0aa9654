package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxQuantity is the largest count an item can hold.
const MaxQuantity = math.MaxInt32

// ParseQuantity converts a stored quantity field into an int. Backends hand
// back different representations: int64 from Firestore, strings from Redis
// hashes, json.Number from JSON columns.
func ParseQuantity(v any) (int, error) {
	var q int64

	switch x := v.(type) {
	case int:
		q = int64(x)
	case int32:
		q = int64(x)
	case int64:
		q = x
	case float64:
		if x != math.Trunc(x) || x > MaxQuantity || x < math.MinInt32 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidQuantity, x)
		}
		q = int64(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, x.String())
		}
		q = n
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidQuantity, x)
		}
		q = n
	case []byte:
		return ParseQuantity(string(x))
	case nil:
		return 0, fmt.Errorf("%w: missing", ErrInvalidQuantity)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidQuantity, v)
	}

	if q < 1 || q > MaxQuantity {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, q)
	}
	return int(q), nil
}
