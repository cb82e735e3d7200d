package cli

import (
	"encoding/json"
	"io"
	"strconv"
)

// writeJSON emits the agent-friendly envelope used by every --json command.
func writeJSON(w io.Writer, key string, data any) error {
	return json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		key:       data,
	})
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, usagef("invalid %s ID %q", kind, arg)
	}
	return id, nil
}
