package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend wraps list responses in an object carrying the array
// under a named field, but not consistently; some deployments return
// bare arrays. Each endpoint normalizes its payload here, once, so the
// ambiguity never leaks past this package.

// unwrapList decodes either {key: [...]} or a bare [...] into out.
func unwrapList(data json.RawMessage, key string, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return fmt.Errorf("unwrap %q: %w", key, err)
	}
	inner, ok := wrapper[key]
	if !ok {
		// Wrapped object without the expected field: an empty list.
		return nil
	}
	return json.Unmarshal(inner, out)
}

// unwrapField decodes one named field of a wrapped object into out,
// falling back to decoding the whole payload when the field is absent.
// Mutation endpoints answer {"message": ..., "transaction": {...}} on
// some routes and the bare entity on others.
func unwrapField(data json.RawMessage, key string, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err == nil {
		if inner, ok := wrapper[key]; ok {
			return json.Unmarshal(inner, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}
