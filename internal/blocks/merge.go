package blocks

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// MergeContent returns the default content of blockType with every top-level
// key present in override replacing the default value. Keys absent from the
// override, null values, and values whose shape does not fit the content
// variant keep their defaults. Keys unknown to a typed variant are dropped.
// A non-object override yields the defaults.
func MergeContent(blockType BlockType, override json.RawMessage) Content {
	defaults := DefaultContent(blockType)

	var fields map[string]json.RawMessage
	if len(bytes.TrimSpace(override)) == 0 || json.Unmarshal(override, &fields) != nil {
		return defaults
	}

	if raw, ok := defaults.(RawContent); ok {
		return mergeRaw(raw, fields)
	}

	desc, ok := builtin.Get(blockType)
	if !ok {
		return defaults
	}

	base, err := toFields(defaults)
	if err != nil {
		return defaults
	}

	merged := make(map[string]json.RawMessage, len(base)+len(fields))
	for key, value := range base {
		merged[key] = value
	}
	overridden := make(map[string]struct{}, len(fields))
	for key, value := range fields {
		if isNull(value) {
			continue
		}
		merged[key] = value
		overridden[key] = struct{}{}
	}

	// Each failed attempt restores one offending key, so the loop is bounded.
	for attempt := 0; attempt <= len(overridden); attempt++ {
		encoded, err := json.Marshal(merged)
		if err != nil {
			return defaults
		}
		target := desc.Empty()
		err = json.Unmarshal(encoded, target)
		if err == nil {
			return target
		}
		key, ok := offendingKey(err)
		if !ok {
			return defaults
		}
		if _, wasOverridden := overridden[key]; !wasOverridden {
			return defaults
		}
		delete(overridden, key)
		if value, ok := base[key]; ok {
			merged[key] = value
		} else {
			delete(merged, key)
		}
	}
	return defaults
}

// MergeContentMap is MergeContent for an already decoded override.
func MergeContentMap(blockType BlockType, override map[string]interface{}) Content {
	if len(override) == 0 {
		return DefaultContent(blockType)
	}
	encoded, err := json.Marshal(override)
	if err != nil {
		return DefaultContent(blockType)
	}
	return MergeContent(blockType, encoded)
}

func mergeRaw(base RawContent, fields map[string]json.RawMessage) RawContent {
	merged := make(RawContent, len(base)+len(fields))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range fields {
		var decoded interface{}
		if err := json.Unmarshal(value, &decoded); err != nil {
			continue
		}
		merged[key] = decoded
	}
	return merged
}

func toFields(content Content) (map[string]json.RawMessage, error) {
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func offendingKey(err error) (string, bool) {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return "", false
	}
	key, _, _ := strings.Cut(typeErr.Field, ".")
	return key, key != ""
}
