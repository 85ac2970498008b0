package common

// StringArg reads a string argument from tool arguments, returning the empty
// string when the key is missing or has a different type.
func StringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// IntArg reads a numeric argument from tool arguments. JSON numbers arrive as
// float64, so the value is truncated to int. Returns def when the key is
// missing or not numeric.
func IntArg(args map[string]interface{}, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

// BoolArg reads a boolean argument from tool arguments, returning def when the
// key is missing or has a different type.
func BoolArg(args map[string]interface{}, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}
