package types

import "fmt"

// Section returns the object stored under ConfigKey in m, or nil if m has
// no such key.
func Section(m map[string]any) (map[string]any, error) {
	raw, ok := m[ConfigKey]
	if !ok {
		return nil, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", ConfigKey)
	}
	return section, nil
}

// ConfigFromMap builds a ServerConfig from decoded JSON. Unknown keys and
// non-string list items are ignored.
func ConfigFromMap(m map[string]any) ServerConfig {
	return ServerConfig{
		Files:       stringsField(m, "files"),
		FlattenTags: stringsField(m, "flattenTags"),
		BreakTags:   stringsField(m, "breakTags"),
	}
}

// ParseSettings decodes workspace/didChangeConfiguration settings, which
// may be the bare configuration object or one nested under ConfigKey.
func ParseSettings(settings any) (ServerConfig, error) {
	if settings == nil {
		return ServerConfig{}, nil
	}
	m, ok := settings.(map[string]any)
	if !ok {
		return ServerConfig{}, fmt.Errorf("settings must be an object, got %T", settings)
	}
	section, err := Section(m)
	if err != nil {
		return ServerConfig{}, err
	}
	if section != nil {
		m = section
	}
	return ConfigFromMap(m), nil
}

// stringsField parses a list-of-strings field. A single string is wrapped
// in a list. A missing field yields nil and an empty list yields an empty,
// non-nil slice, so Merge can tell "unset" from "none".
func stringsField(m map[string]any, key string) []string {
	value, ok := m[key]
	if !ok {
		return nil
	}

	switch v := value.(type) {
	case string:
		return []string{v}
	case []any:
		values := []string{}
		for _, item := range v {
			if str, ok := item.(string); ok {
				values = append(values, str)
			}
		}
		return values
	case []string:
		return v
	}

	return nil
}
