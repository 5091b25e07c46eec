package model

// Transaction is an opaque record of string keys to JSON-compatible values.
type Transaction map[string]any

// Clone deep-copies nested map[string]any and []any values. Other values,
// including typed slices and maps, are shared; blocks built by the chain
// package hold only the generic forms.
func (t Transaction) Clone() Transaction {
	if t == nil {
		return nil
	}
	out := make(Transaction, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = cloneValue(item)
		}
		return out
	case Transaction:
		return value.Clone()
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
