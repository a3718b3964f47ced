package questrade

import (
	"fmt"
	"net/url"
	"strconv"

	"golang.org/x/exp/constraints"
)

// ParamValue is any value that can appear in a query string.
type ParamValue interface {
	~string | constraints.Integer | constraints.Float
}

// Param sets key to value in params, allocating params when nil.
func Param[V ParamValue](params url.Values, key string, value V) url.Values {
	if params == nil {
		params = url.Values{}
	}
	params.Set(key, formatParam(value))
	return params
}

func formatParam[V ParamValue](value V) string {
	switch v := any(value).(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
