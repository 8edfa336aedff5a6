package config

// Options is a visitor's free-form option map as decoded from YAML or TOML.
type Options map[string]any

// Get returns the value for key, or defaultValue if it is not set.
func (o Options) Get(key string, defaultValue any) any {
	if v, ok := o[key]; ok {
		return v
	}
	return defaultValue
}

// Int returns an integer option. YAML decodes to int, TOML to int64 and
// JSON to float64; all three are accepted.
func (o Options) Int(key string, defaultValue int) int {
	switch val := o.Get(key, defaultValue).(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// String returns a string option.
func (o Options) String(key string, defaultValue string) string {
	if s, ok := o.Get(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// Bool returns a boolean option.
func (o Options) Bool(key string, defaultValue bool) bool {
	if b, ok := o.Get(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// Strings returns a string-list option. A single string is accepted as a
// one-element list.
func (o Options) Strings(key string, defaultValue []string) []string {
	switch val := o.Get(key, defaultValue).(type) {
	case []string:
		return val
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
