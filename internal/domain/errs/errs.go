package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrStale      = errors.New("stale write")
)

// ValidationError reports malformed or missing input. Fields maps a field name
// (JSON naming) to a human readable reason.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports a uniqueness violation on Entity.Field.
type ConflictError struct {
	Entity string
	Field  string
}

func NewConflict(entity, field string) *ConflictError {
	return &ConflictError{Entity: entity, Field: field}
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s already exists", e.Entity)
	}
	return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StaleError reports a write based on a read that another writer has since
// superseded. It matches both ErrStale and ErrConflict.
type StaleError struct {
	Entity string
	Key    string
}

func NewStale(entity, key string) *StaleError {
	return &StaleError{Entity: entity, Key: key}
}

func (e *StaleError) Error() string {
	return fmt.Sprintf("%s %q was modified concurrently", e.Entity, e.Key)
}

func (e *StaleError) Is(target error) bool { return target == ErrStale || target == ErrConflict }

// NotFoundError reports a missing record of kind Entity looked up by Key.
type NotFoundError struct {
	Entity string
	Key    string
}

func NewNotFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Entity names used across the taxonomy.
const (
	EntityAccount       = "account"
	EntityProduct       = "product"
	EntityWishlistEntry = "wishlist entry"
)
