package jq

import (
	"encoding/json"
	"fmt"

	"github.com/itchyny/gojq"
)

// PerformJqQuery runs jqQuery over jsonContent and returns every value it
// emits.
func PerformJqQuery(jsonContent []byte, jqQuery string) ([]any, error) {
	var jsonData any
	if err := json.Unmarshal(jsonContent, &jsonData); err != nil {
		return nil, fmt.Errorf("failed to decode jq input: %w", err)
	}
	return run(jsonData, jqQuery)
}

// Apply runs jqQuery over the JSON form of v.
func Apply(v any, jqQuery string) ([]any, error) {
	jsonContent, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode jq input: %w", err)
	}
	return PerformJqQuery(jsonContent, jqQuery)
}

func run(input any, jqQuery string) ([]any, error) {
	query, err := gojq.Parse(jqQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid jq query %q: %w", jqQuery, err)
	}
	results := make([]any, 0)
	iter := query.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			if haltErr, ok := err.(*gojq.HaltError); ok && haltErr.Value() == nil {
				break
			}
			return nil, fmt.Errorf("jq query %q failed: %w", jqQuery, err)
		}
		results = append(results, v)
	}
	return results, nil
}
