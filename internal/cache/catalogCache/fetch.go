package catalogCache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Fetch is a type-safe wrapper around Service.Fetch
func Fetch[T any](ctx context.Context, service Service, ns Namespace, key string, fill func(ctx context.Context) (T, error)) (T, error) {
	result, err := service.Fetch(ctx, ns, key, decodeAs[T], func(ctx context.Context) (interface{}, error) {
		value, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// decodeAs handles both backends: memory returns the stored value, Redis returns JSON
func decodeAs[T any](raw interface{}) (interface{}, error) {
	switch v := raw.(type) {
	case T:
		return v, nil
	case string:
		var value T
		if err := json.Unmarshal([]byte(v), &value); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cached value: %w", err)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unexpected type in cache: %T", v)
	}
}
