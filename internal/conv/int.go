package conv

import (
	"encoding/json"
	"strconv"
)

// AsInt coerces JSON-RPC ids and other numeric values to int, unsupported values yield 0
func AsInt(value interface{}) int {
	switch actual := value.(type) {
	case int:
		return actual
	case int8:
		return int(actual)
	case int16:
		return int(actual)
	case int32:
		return int(actual)
	case int64:
		return int(actual)
	case uint:
		return int(actual)
	case uint8:
		return int(actual)
	case uint16:
		return int(actual)
	case uint32:
		return int(actual)
	case uint64:
		return int(actual)
	case float32:
		return int(actual)
	case float64:
		return int(actual)
	case json.Number:
		ret, _ := strconv.Atoi(string(actual))
		return ret
	case string:
		ret, _ := strconv.Atoi(actual)
		return ret
	case *int:
		if actual == nil {
			return 0
		}
		return *actual
	}
	return 0
}
