package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// getList fetches an endpoint the API answers either with a bare array or
// with a paginated envelope, and returns the items.
func getList[T any](ctx context.Context, c *Client, path string, params map[string]string) ([]T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, params, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var items []T
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	return env.Data, nil
}
