package validate

import (
	"encoding/json"
	"math"
)

// decodeIntSlots parses a JSON-encoded slot list. A non-nil error means the
// value is not valid JSON; a nil slice with a nil error means the JSON was
// valid but is not an array of integers. The returned slice is non-nil
// (possibly empty) only when the value is well formed.
func decodeIntSlots(raw string) ([]int, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, err
	}
	arr, ok := value.([]any)
	if !ok {
		return nil, nil
	}
	slots := make([]int, 0, len(arr))
	for _, elem := range arr {
		f, ok := elem.(float64)
		if !ok || f != math.Trunc(f) {
			return nil, nil
		}
		slots = append(slots, int(f))
	}
	return slots, nil
}
