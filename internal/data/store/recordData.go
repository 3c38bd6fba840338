package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/akolanti/DocRouter/internal/domain/documentModel"
)

// normalizeData turns arbitrary values into their JSON shape (maps, slices, strings,
// json.Number, bool, nil). Both backends return the same shapes and stored values are
// never aliased by callers.
func normalizeData(data map[string]any) (map[string]any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode record data: %w", err)
	}
	var out map[string]any
	if err := decodeValue(raw, &out); err != nil {
		return nil, fmt.Errorf("decode record data: %w", err)
	}
	return out, nil
}

// decodeValue keeps numbers as json.Number so integers above 2^53 survive a round trip.
func decodeValue(raw []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	return decoder.Decode(v)
}

func shallowMerge(existing map[string]any, delta map[string]any) map[string]any {
	out := make(map[string]any, len(existing)+len(delta))
	maps.Copy(out, existing)
	maps.Copy(out, delta)
	return out
}

// mergeExtractedFields returns the delta with its extracted_fields laid over the stored
// extracted_fields. Anything that is not an object on either side is replaced wholesale.
func mergeExtractedFields(existing map[string]any, delta map[string]any) map[string]any {
	out := maps.Clone(delta)
	if out == nil {
		out = map[string]any{}
	}

	incoming, isMap := delta[documentModel.KeyExtractedFields].(map[string]any)
	if !isMap {
		return out
	}
	current, isMap := existing[documentModel.KeyExtractedFields].(map[string]any)
	if !isMap {
		return out
	}

	merged := make(map[string]any, len(current)+len(incoming))
	maps.Copy(merged, current)
	maps.Copy(merged, incoming)
	out[documentModel.KeyExtractedFields] = merged
	return out
}

func sortedKeys(data map[string]any) []string {
	return slices.Sorted(maps.Keys(data))
}
