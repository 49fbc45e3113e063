package features

import "fmt"

// FeaturesToAttributes converts a feature dict with mixed value types into
// float-valued features.
//
// Conversion rules:
//   - string value: "key=value" → 1.0
//   - []string value: "key:item" → 1.0 for each item
//   - bool value: "key" → 1.0 if true, omitted if false
//   - numeric value: "key" → float64(value)
//   - nil value: omitted
//   - anything else: "key" → 1.0
func FeaturesToAttributes(features map[string]any) map[string]float64 {
	attrs := make(map[string]float64, len(features))
	for key, val := range features {
		switch v := val.(type) {
		case string:
			attrs[fmt.Sprintf("%s=%s", key, v)] = 1.0
		case []string:
			for _, item := range v {
				attrs[fmt.Sprintf("%s:%s", key, item)] = 1.0
			}
		case []any:
			// JSON arrays decode as []any.
			for _, item := range v {
				attrs[fmt.Sprintf("%s:%v", key, item)] = 1.0
			}
		case bool:
			if v {
				attrs[key] = 1.0
			}
		case int:
			attrs[key] = float64(v)
		case int64:
			attrs[key] = float64(v)
		case float64:
			attrs[key] = v
		case nil:
		default:
			attrs[key] = 1.0
		}
	}
	return attrs
}
