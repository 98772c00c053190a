package conditions

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	OpEquals             = "equals"
	OpNotEquals          = "not_equals"
	OpContains           = "contains"
	OpNotContains        = "not_contains"
	OpStartsWith         = "starts_with"
	OpEndsWith           = "ends_with"
	OpIsEmpty            = "is_empty"
	OpIsNotEmpty         = "is_not_empty"
	OpGreaterThan        = "greater_than"
	OpLessThan           = "less_than"
	OpGreaterThanOrEqual = "greater_than_or_equal"
	OpLessThanOrEqual    = "less_than_or_equal"
	OpIn                 = "in"
	OpNotIn              = "not_in"
)

// IsKnownOperator reports whether op is a supported comparison.
func IsKnownOperator(op string) bool {
	switch op {
	case OpEquals, OpNotEquals, OpContains, OpNotContains, OpStartsWith, OpEndsWith,
		OpIsEmpty, OpIsNotEmpty, OpGreaterThan, OpLessThan, OpGreaterThanOrEqual,
		OpLessThanOrEqual, OpIn, OpNotIn:
		return true
	}
	return false
}

// compare applies op to actual and expected. A nil actual means the value does not exist
// and only satisfies is_empty and not_equals.
func compare(op string, actual *string, expected string) (bool, error) {
	if actual == nil {
		switch op {
		case OpIsEmpty, OpNotEquals:
			return true, nil
		}
		if !IsKnownOperator(op) {
			return false, fmt.Errorf("unknown operator %q", op)
		}
		return false, nil
	}

	a := strings.ToLower(strings.TrimSpace(*actual))
	e := strings.ToLower(strings.TrimSpace(expected))

	switch op {
	case OpEquals:
		return a == e, nil
	case OpNotEquals:
		return a != e, nil
	case OpContains:
		return strings.Contains(a, e), nil
	case OpNotContains:
		return !strings.Contains(a, e), nil
	case OpStartsWith:
		return strings.HasPrefix(a, e), nil
	case OpEndsWith:
		return strings.HasSuffix(a, e), nil
	case OpIsEmpty:
		return a == "", nil
	case OpIsNotEmpty:
		return a != "", nil
	case OpIn:
		return inList(a, e), nil
	case OpNotIn:
		return !inList(a, e), nil
	case OpGreaterThan, OpLessThan, OpGreaterThanOrEqual, OpLessThanOrEqual:
		return compareNumbers(op, a, e)
	}
	return false, fmt.Errorf("unknown operator %q", op)
}

func compareNumbers(op, actual, expected string) (bool, error) {
	a, err := strconv.ParseFloat(actual, 64)
	if err != nil {
		return false, fmt.Errorf("actual value %q is not numeric", actual)
	}
	e, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return false, fmt.Errorf("expected value %q is not numeric", expected)
	}
	switch op {
	case OpGreaterThan:
		return a > e, nil
	case OpLessThan:
		return a < e, nil
	case OpGreaterThanOrEqual:
		return a >= e, nil
	default:
		return a <= e, nil
	}
}

func inList(v, list string) bool {
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == v {
			return true
		}
	}
	return false
}
