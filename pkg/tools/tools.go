// Package tools exposes the geomechanics calculations as named JSON tools.
//
// A [Tool] decodes a JSON request, applies defaults, validates ranges, calls
// one of the core packages and returns a JSON object with the result fields,
// a units string and the inputs it actually used. The CLI and the HTTP API
// both dispatch through a [Registry], so every entry point validates and
// reports errors the same way.
//
// # Usage
//
//	reg := tools.Default()
//	out, err := reg.Call(ctx, "geomech_vertical_stress", []byte(`{"depth": 10000}`))
//
// A [Runner] adds caching, run archiving, metrics hooks and logging around
// Registry.Call.
//
// # Errors
//
// Call returns *errors.Error values. An unknown name is UNKNOWN_TOOL,
// malformed JSON, an unknown field, a missing required field or a range
// violation is INVALID_INPUT, and calculation failures keep their own codes
// (INSUFFICIENT_INPUT, SHAPE_MISMATCH, DOMAIN_ERROR).
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/matzehuels/geomech/pkg/errors"
)

// Category groups tools in listings.
type Category string

const (
	CategoryStress       Category = "stress"
	CategoryPorePressure Category = "pore_pressure"
	CategoryRock         Category = "rock"
	CategoryStrength     Category = "strength"
	CategoryWellbore     Category = "wellbore"
	CategoryStability    Category = "stability"
	CategoryProduction   Category = "production"
	CategoryFault        Category = "fault"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryStress, CategoryPorePressure, CategoryRock, CategoryStrength,
	CategoryWellbore, CategoryStability, CategoryProduction, CategoryFault,
}

// Handler runs a tool on a raw JSON request.
type Handler func(ctx context.Context, raw json.RawMessage) (any, error)

// Tool is a registered calculation.
type Tool struct {
	Name     string          `json:"name"`
	Category Category        `json:"category"`
	Summary  string          `json:"summary"`
	Example  json.RawMessage `json:"example,omitempty"`
	Fields   []Field         `json:"fields,omitempty"`

	handler Handler
}

// Field describes one request field.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// Registry holds the tools by name.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t. Registering a name twice is an error.
func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.handler == nil {
		return errors.New(errors.ErrCodeInternal, "tool must have a name and a handler")
	}
	if _, dup := r.tools[t.Name]; dup {
		return errors.New(errors.ErrCodeInternal, "tool %s registered twice", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry) MustRegister(tools ...Tool) {
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// List returns the tools in registration order, optionally filtered to one
// category.
func (r *Registry) List(category Category) []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Names returns the sorted tool names.
func (r *Registry) Names() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Call runs the named tool and returns its JSON response.
func (r *Registry) Call(ctx context.Context, name string, raw []byte) (json.RawMessage, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownTool, "unknown tool %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	res, err := t.handler(ctx, raw)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s response", name)
	}
	return out, nil
}

// =============================================================================
// Request plumbing
// =============================================================================

// request is implemented by every request struct.
type request interface {
	// defaults fills optional fields before the JSON is decoded over them.
	defaults()
	// validate checks ranges after decoding.
	validate() error
}

// define builds a Tool whose handler decodes a Req, validates it and calls fn.
func define[Req any, P interface {
	*Req
	request
}](name string, cat Category, summary string, example string, fn func(ctx context.Context, req *Req) (any, error)) Tool {
	return Tool{
		Name:     name,
		Category: cat,
		Summary:  summary,
		Example:  json.RawMessage(example),
		Fields:   fieldsOf(reflect.TypeFor[Req]()),
		handler: func(ctx context.Context, raw json.RawMessage) (any, error) {
			req := new(Req)
			P(req).defaults()
			if err := decode(raw, req); err != nil {
				return nil, err
			}
			if err := P(req).validate(); err != nil {
				return nil, err
			}
			return fn(ctx, req)
		},
	}
}

// decode unmarshals raw into req, rejecting unknown fields and missing
// required fields.
func decode(raw json.RawMessage, req any) error {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "request must be a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request: %s", jsonMessage(err))
	}

	var missing []string
	for _, f := range fieldsOf(reflect.TypeOf(req).Elem()) {
		if f.Required {
			if v, ok := present[f.Name]; !ok || string(v) == "null" {
				missing = append(missing, f.Name)
			}
		}
	}
	if len(missing) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "missing required field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

func jsonMessage(err error) string {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return fmt.Sprintf("%s must be %s, got %s", te.Field, jsonType(te.Type), te.Value)
	}
	return strings.TrimPrefix(err.Error(), "json: ")
}

// fieldsOf lists the JSON fields of a request struct, including those of
// embedded structs. A field is required when tagged `required:"true"`.
func fieldsOf(t reflect.Type) []Field {
	var out []Field
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && sf.Tag.Get("json") == "" {
			out = append(out, fieldsOf(sf.Type)...)
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		out = append(out, Field{
			Name:     name,
			Type:     jsonType(sf.Type),
			Required: sf.Tag.Get("required") == "true",
		})
	}
	return out
}

func jsonType(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int64:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice:
		return "array of " + jsonType(t.Elem())
	}
	if t == reflect.TypeFor[numbers]() {
		return "number or array"
	}
	return "object"
}

// =============================================================================
// Responses
// =============================================================================

// Response is the JSON shape of every tool result: the fields of Result,
// followed by "units" and "inputs".
type Response struct {
	Result any
	Units  string
	Inputs any
}

// MarshalJSON flattens Result into the top-level object.
func (r Response) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(r.Result)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("tool result must encode as a JSON object, got %.20s", body)
	}

	var buf bytes.Buffer
	buf.Write(body[:len(body)-1])
	sep := len(bytes.TrimSpace(body[1:len(body)-1])) > 0
	writeField := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if sep {
			buf.WriteByte(',')
		}
		sep = true
		fmt.Fprintf(&buf, "%q:", key)
		buf.Write(b)
		return nil
	}
	if r.Units != "" {
		if err := writeField("units", r.Units); err != nil {
			return nil, err
		}
	}
	if r.Inputs != nil {
		if err := writeField("inputs", r.Inputs); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// numbers is a scalar or an array of numbers.
type numbers struct {
	values []float64
	scalar bool
}

func (n *numbers) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.values, n.scalar = []float64{f}, true
		return nil
	}
	var fs []float64
	if err := json.Unmarshal(b, &fs); err != nil {
		return fmt.Errorf("expected a number or an array of numbers")
	}
	n.values, n.scalar = fs, false
	return nil
}

func (n numbers) MarshalJSON() ([]byte, error) {
	if n.scalar && len(n.values) == 1 {
		return json.Marshal(n.values[0])
	}
	return json.Marshal(n.values)
}
