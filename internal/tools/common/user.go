package common

import "strings"

// UserFromArgs returns the planner user a tool call acts for. It looks at
// the "user" and "host" arguments, then at the first entry of "invitees".
// Returns "" when none is set.
func UserFromArgs(args map[string]interface{}) string {
	for _, key := range []string{"user", "host"} {
		if v, ok := args[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}

	invitees := StringList(args["invitees"])
	if len(invitees) > 0 {
		return invitees[0]
	}
	return ""
}

// StringList reads a list argument. MCP clients send either a JSON array or
// a comma separated string; blanks are dropped.
func StringList(v interface{}) []string {
	var raw []string
	switch val := v.(type) {
	case string:
		raw = strings.Split(val, ",")
	case []string:
		raw = val
	case []interface{}:
		for _, item := range val {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
