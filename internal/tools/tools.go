package tools

import (
	"context"
	"fmt"
	"time"
)

// Kind classifies an operation as a read (safe to run without
// confirmation) or a write (mutates organization state; the model is
// instructed to confirm with the user first).
type Kind string

const (
	KindRead  Kind = "read"
	KindWrite Kind = "write"
)

// Identity is the organization-scoped caller identity, supplied once per
// top-level request and threaded unchanged into every execution. Tools
// never accept caller identity as a model-provided argument.
type Identity struct {
	OrganizationID string
	UserID         string
}

// ErrKind categorizes execution failures. All of them are recoverable
// within the conversation: they are serialized back to the model rather
// than failing the request.
type ErrKind string

const (
	ErrValidation   ErrKind = "validation_failed"
	ErrNotFound     ErrKind = "not_found"
	ErrStore        ErrKind = "store_error"
	ErrUnauthorized ErrKind = "unauthorized"
)

// ExecError is a structured tool failure.
type ExecError struct {
	Kind    ErrKind `json:"kind"`
	Message string  `json:"error"`
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func validationErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func storeErr(err error) *ExecError {
	return &ExecError{Kind: ErrStore, Message: err.Error()}
}

func unauthorizedErr(format string, args ...any) *ExecError {
	return &ExecError{Kind: ErrUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// Property describes one parameter of an operation.
type Property struct {
	Type        string   // "string", "number", "boolean"
	Description string
	Enum        []string
}

// Schema is an operation's parameter schema: field definitions plus the
// required list. Consumed both for model advertisement and for argument
// validation before execution.
type Schema struct {
	Properties map[string]Property
	Required   []string
}

// InputSchema renders the schema in the JSON-schema shape the messages
// API expects for tool declarations.
func (s Schema) InputSchema() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[name] = prop
	}
	required := s.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// Args is a validated argument bundle, JSON-decoded so numbers arrive as
// float64.
type Args map[string]any

// String returns a string argument, or "" when absent.
func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

// Number returns a numeric argument, or 0 when absent.
func (a Args) Number(key string) float64 {
	switch v := a[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// Int returns a numeric argument truncated to int.
func (a Args) Int(key string) int {
	return int(a.Number(key))
}

// Bool returns a boolean argument; missing keys return the fallback.
func (a Args) Bool(key string, fallback bool) bool {
	if v, ok := a[key].(bool); ok {
		return v
	}
	return fallback
}

// Timestamp layouts accepted from the model. The system prompt instructs
// the model to normalize natural-language dates to YYYY-MM-DDTHH:MM:SS.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time parses a timestamp argument. The bool is false when the argument
// is absent; a present but unparseable value returns an error.
func (a Args) Time(key string) (time.Time, bool, error) {
	raw, ok := a[key].(string)
	if !ok || raw == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, true, fmt.Errorf("could not parse %q as a date/time", raw)
}

// Tool is one entry of the operation catalog: immutable metadata plus a
// typed handler. Handlers receive pre-validated arguments and the request
// identity; they never see raw model output.
type Tool struct {
	Name        string
	Description string
	Kind        Kind
	Schema      Schema
	Execute     func(ctx context.Context, id Identity, args Args) (any, *ExecError)
}
