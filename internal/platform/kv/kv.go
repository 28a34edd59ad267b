package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	apperrors "sprintbell/internal/platform/errors"
)

// Namespace prefixes every key the application writes.
const Namespace = "SprintBell."

// Store is a flat string-keyed store. Values are JSON text so primitives and
// structured blobs share one representation.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// SetMany writes related keys together; SQL-backed stores use one transaction.
	SetMany(ctx context.Context, values map[string]string) error
	Remove(ctx context.Context, key string) error
	RemoveMany(ctx context.Context, keys ...string) error
	Has(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

func Encode(v any) (string, error) {
	if t, ok := v.(time.Time); ok {
		v = t.UTC().Format(time.RFC3339Nano)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode value: %w", err)
	}
	return string(raw), nil
}

func GetJSON(ctx context.Context, s Store, key string, target any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return ok, err
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return true, fmt.Errorf("decode %s: %w: %v", key, apperrors.ErrInvalidInput, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := Encode(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}

func GetInt(ctx context.Context, s Store, key string) (int, bool, error) {
	var v int
	ok, err := GetJSON(ctx, s, key, &v)
	return v, ok, err
}

func GetBool(ctx context.Context, s Store, key string) (bool, bool, error) {
	var v bool
	ok, err := GetJSON(ctx, s, key, &v)
	return v, ok, err
}

func GetString(ctx context.Context, s Store, key string) (string, bool, error) {
	var v string
	ok, err := GetJSON(ctx, s, key, &v)
	return v, ok, err
}

func GetTime(ctx context.Context, s Store, key string) (time.Time, bool, error) {
	raw, ok, err := GetString(ctx, s, key)
	if err != nil || !ok {
		return time.Time{}, ok, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("decode %s: %w: %v", key, apperrors.ErrInvalidInput, err)
	}
	return parsed, true, nil
}

func SetInt(ctx context.Context, s Store, key string, v int) error {
	return SetJSON(ctx, s, key, v)
}

func SetBool(ctx context.Context, s Store, key string, v bool) error {
	return SetJSON(ctx, s, key, v)
}

func SetString(ctx context.Context, s Store, key, v string) error {
	return SetJSON(ctx, s, key, v)
}

func SetTime(ctx context.Context, s Store, key string, v time.Time) error {
	return SetJSON(ctx, s, key, v)
}
