package cache

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// KeySeparator delimits the namespace and each parameter segment
	KeySeparator = "|"

	nullToken = "none"
)

// MakeKey builds a stable cache key: <namespace>|k1=v1|k2=v2...
// Parameters are ordered by name so the insertion order never matters.
// Nil values are kept and rendered as "none"; strings are quoted so a
// literal "none" filter cannot collide with an absent one.
func MakeKey(namespace string, params map[string]interface{}) string {
	if len(params) == 0 {
		return namespace
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(namespace)
	for _, name := range names {
		b.WriteString(KeySeparator)
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(formatValue(params[name]))
	}

	return b.String()
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return nullToken
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case *string:
		if val == nil {
			return nullToken
		}
		return formatValue(*val)
	case *bool:
		if val == nil {
			return nullToken
		}
		return formatValue(*val)
	case *int:
		if val == nil {
			return nullToken
		}
		return formatValue(*val)
	case *int64:
		if val == nil {
			return nullToken
		}
		return formatValue(*val)
	case *float64:
		if val == nil {
			return nullToken
		}
		return formatValue(*val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
