package extract

import (
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// JSONInt follows a path of object keys and returns the integer found at the end of it.
// JSONInt(v, "count") reads {"count": 900000} as 900000.
func JSONInt(value ldvalue.Value, path ...string) (int, error) {
	locator := "$." + strings.Join(path, ".")
	current := value
	for _, key := range path {
		if current.Type() != ldvalue.ObjectType {
			return 0, &ExtractionError{Locator: locator, Err: ErrNoMatch}
		}
		next, ok := current.TryGetByKey(key)
		if !ok {
			return 0, &ExtractionError{Locator: locator, Err: ErrNoMatch}
		}
		current = next
	}
	if !current.IsInt() {
		return 0, &ExtractionError{Locator: locator, Matches: 1, Text: current.JSONString(), Err: ErrNotNumeric}
	}
	return current.IntValue(), nil
}

// JSONWeightedSum treats the object at the given path as a map from integer keys to integer
// counts, and returns the sum of key × count. This is the shape of a facet in the registry's
// search API, where each key is a value that occurs and each count is how often it occurs.
func JSONWeightedSum(value ldvalue.Value, path ...string) (int, error) {
	locator := "$." + strings.Join(path, ".")
	current := value
	for _, key := range path {
		next, ok := current.TryGetByKey(key)
		if !ok {
			return 0, &ExtractionError{Locator: locator, Err: ErrNoMatch}
		}
		current = next
	}
	if current.Type() != ldvalue.ObjectType {
		return 0, &ExtractionError{Locator: locator, Text: current.JSONString(), Err: ErrNoMatch}
	}
	total := 0
	for _, key := range current.Keys() {
		weight, err := strconv.Atoi(key)
		if err != nil {
			return 0, &ExtractionError{Locator: locator + "." + key, Text: key, Err: ErrNotNumeric}
		}
		count := current.GetByKey(key)
		if !count.IsInt() {
			return 0, &ExtractionError{Locator: locator + "." + key, Text: count.JSONString(), Err: ErrNotNumeric}
		}
		total += weight * count.IntValue()
	}
	return total, nil
}
