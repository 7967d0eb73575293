package tickets

import "encoding/json"

// extractor pulls the ticket sequence out of one known response shape.
type extractor struct {
	name string
	fn   func(raw json.RawMessage) ([]json.RawMessage, bool)
}

// envelopeKeys is the priority order of wrapper keys after the bare array.
var envelopeKeys = []string{"object", "tickets", "data", "results"}

var extractors = buildExtractors()

func buildExtractors() []extractor {
	out := []extractor{{name: "array", fn: bareArray}}
	for _, key := range envelopeKeys {
		key := key
		out = append(out, extractor{name: key, fn: func(raw json.RawMessage) ([]json.RawMessage, bool) {
			return wrapped(raw, key)
		}})
	}
	return out
}

func bareArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, false
	}
	return items, true
}

func wrapped(raw json.RawMessage, key string) ([]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	inner, ok := obj[key]
	if !ok {
		return nil, false
	}
	return bareArray(inner)
}

// ExtractRecords tries each known envelope shape in order and returns the
// first sequence found. The second result is false when no shape matched.
func ExtractRecords(raw []byte) ([]json.RawMessage, bool) {
	items, _, ok := extractRecords(raw)
	return items, ok
}

func extractRecords(raw []byte) ([]json.RawMessage, string, bool) {
	for _, ex := range extractors {
		if items, ok := ex.fn(raw); ok {
			return items, ex.name, true
		}
	}
	return nil, "", false
}
