package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/Avi9631/partner-platform/internal/pkg/validator"
)

// Error codes that are not validator tag names.
const (
	CodeCustom       = "custom"
	CodeInvalidType  = "invalid_type"
	CodeRequiredStep = "required_step"
)

// FieldError is one problem inside a step payload. Field is the dotted JSON
// path, e.g. "coordinates.lat" or "reraIds[0].id".
type FieldError struct {
	Field   string   `json:"field"`
	Message string   `json:"message"`
	Code    string   `json:"code"`
	Path    []string `json:"path,omitempty"`
}

func newFieldError(field, code, message string) FieldError {
	return FieldError{Field: field, Message: message, Code: code, Path: splitPath(field)}
}

// Result is the outcome of validating a single step.
type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
	Data   any          `json:"-"`
}

// refiner is implemented by step structs with cross-field rules.
type refiner interface {
	Refine() []FieldError
}

var registry = map[string]map[StepID]func() any{
	KindProperty:  propertySchemas,
	KindProject:   projectSchemas,
	KindDeveloper: developerSchemas,
	KindPGHostel:  pgHostelSchemas,
}

// HasSchema reports whether a schema is registered for the kind's step.
func HasSchema(kind string, stepID StepID) bool {
	_, ok := registry[kind][stepID]
	return ok
}

// Validate checks one step payload of a draft of the given kind. A step
// without a registered schema is valid.
func Validate(kind string, stepID string, payload json.RawMessage) Result {
	newSchema, ok := registry[kind][CanonicalStepID(stepID)]
	if !ok {
		return Result{Valid: true, Errors: []FieldError{}}
	}

	target := newSchema()
	var errs []FieldError

	raw := bytes.TrimSpace(payload)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	typeErrField := ""
	if err := json.Unmarshal(raw, target); err != nil {
		fe := decodeError(err)
		typeErrField = fe.Field
		errs = append(errs, fe)
		if fe.Field == "" {
			return Result{Valid: false, Errors: errs}
		}
	}

	root := reflect.TypeOf(target)
	for _, fe := range validator.Struct(target) {
		field := trimRoot(fe.Namespace())
		if field == typeErrField {
			continue
		}
		msg := customMessage(root, fe.StructNamespace())
		if msg == "" {
			msg = validator.Message(fe)
		}
		errs = append(errs, newFieldError(field, fe.Tag(), msg))
	}

	if r, ok := target.(refiner); ok {
		errs = append(errs, r.Refine()...)
	}

	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}
	return Result{Valid: true, Errors: []FieldError{}, Data: target}
}

func decodeError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return newFieldError(typeErr.Field, CodeInvalidType,
			fmt.Sprintf("Expected %s, received %s", jsonKind(typeErr.Type), typeErr.Value))
	}
	return FieldError{Field: "", Code: CodeInvalidType, Message: "Step data must be a JSON object"}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "number"
	default:
		return t.String()
	}
}

// trimRoot drops the struct type name that validator puts first.
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func splitPath(field string) []string {
	if field == "" {
		return nil
	}
	return strings.FieldsFunc(field, func(r rune) bool {
		return r == '.' || r == '[' || r == ']'
	})
}

// customMessage returns the `msg` struct tag of the field addressed by a
// validator struct namespace, if any.
func customMessage(root reflect.Type, structNS string) string {
	segments := strings.Split(structNS, ".")
	t := root
	for i, seg := range segments[1:] {
		t = elemStruct(t)
		if t == nil {
			return ""
		}
		if j := strings.IndexByte(seg, '['); j >= 0 {
			seg = seg[:j]
		}
		f, ok := t.FieldByName(seg)
		if !ok {
			return ""
		}
		if i == len(segments)-2 {
			return f.Tag.Get("msg")
		}
		t = f.Type
	}
	return ""
}

func elemStruct(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array || t.Kind() == reflect.Map {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// DraftValidationError aggregates field errors keyed by step id.
type DraftValidationError struct {
	Errors map[StepID][]FieldError
}

func (e *DraftValidationError) Error() string {
	steps := e.Steps()
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = string(s)
	}
	return fmt.Sprintf("draft validation failed in %d step(s): %s", len(steps), strings.Join(ids, ", "))
}

// Steps returns the failing step ids in sorted order.
func (e *DraftValidationError) Steps() []StepID {
	out := make([]StepID, 0, len(e.Errors))
	for id := range e.Errors {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (e *DraftValidationError) add(step StepID, errs ...FieldError) {
	if e.Errors == nil {
		e.Errors = make(map[StepID][]FieldError)
	}
	e.Errors[step] = append(e.Errors[step], errs...)
}

// MissingStepError reports a required step that has no data.
func MissingStepError(step StepID) *DraftValidationError {
	e := &DraftValidationError{}
	e.add(step, missingStep(step))
	return e
}

func missingStep(step StepID) FieldError {
	return FieldError{
		Field:   "",
		Code:    CodeRequiredStep,
		Message: StepName(step) + " is required",
	}
}

// Normalize canonicalises step keys. A canonical key wins over its alias.
func Normalize(data map[string]json.RawMessage) map[StepID]json.RawMessage {
	out := make(map[StepID]json.RawMessage, len(data))
	for key, value := range data {
		id := CanonicalStepID(key)
		if _, exists := out[id]; exists && string(id) != key {
			continue
		}
		out[id] = value
	}
	return out
}

// DraftPropertyType reads property-type.propertyType from draft data.
func DraftPropertyType(data map[StepID]json.RawMessage) PropertyType {
	var step struct {
		PropertyType string `json:"propertyType"`
	}
	if raw, ok := data[StepPropertyType]; ok {
		_ = json.Unmarshal(raw, &step)
	}
	return PropertyType(step.PropertyType)
}

func stepsFor(kind string, data map[StepID]json.RawMessage) []StepID {
	if kind == KindProperty {
		return StepIDs(DraftPropertyType(data))
	}
	return KindStepIDs(kind)
}

// hasData is false for absent, null and empty-object payloads.
func hasData(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return len(obj) > 0
	}
	return true
}

// ValidateDraft validates every present step of the kind's flow and checks
// the required steps. It returns nil when the draft is publishable.
func ValidateDraft(kind string, data map[string]json.RawMessage) *DraftValidationError {
	steps := Normalize(data)
	result := &DraftValidationError{}

	for _, id := range stepsFor(kind, steps) {
		raw, ok := steps[id]
		if !ok || len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		if r := Validate(kind, string(id), raw); !r.Valid {
			result.add(id, r.Errors...)
		}
	}

	for _, id := range missingRequired(kind, steps) {
		result.add(id, missingStep(id))
	}

	if len(result.Errors) == 0 {
		return nil
	}
	return result
}

func missingRequired(kind string, steps map[StepID]json.RawMessage) []StepID {
	var missing []StepID
	for _, id := range RequiredSteps(kind) {
		if !hasData(steps[id]) {
			missing = append(missing, id)
		}
	}
	return missing
}

// ValidationSummary reports draft completeness for the dashboard.
type ValidationSummary struct {
	DraftType              string                  `json:"draftType"`
	PropertyType           PropertyType            `json:"propertyType,omitempty"`
	TotalSteps             int                     `json:"totalSteps"`
	CompletedSteps         int                     `json:"completedSteps"`
	CompletenessPercentage int                     `json:"completenessPercentage"`
	IsValid                bool                    `json:"isValid"`
	HasAllRequiredSteps    bool                    `json:"hasAllRequiredSteps"`
	MissingSteps           []StepID                `json:"missingSteps"`
	ValidationErrors       map[StepID][]FieldError `json:"validationErrors"`
	CompletedStepIDs       []StepID                `json:"completedStepIds"`
}

// Summary computes completeness and validity for a draft.
func Summary(kind string, data map[string]json.RawMessage) ValidationSummary {
	steps := Normalize(data)
	expected := stepsFor(kind, steps)

	completed := make([]StepID, 0, len(expected))
	for _, id := range expected {
		if hasData(steps[id]) {
			completed = append(completed, id)
		}
	}

	missing := missingRequired(kind, steps)
	if missing == nil {
		missing = []StepID{}
	}

	summary := ValidationSummary{
		DraftType:        kind,
		TotalSteps:       len(expected),
		CompletedSteps:   len(completed),
		MissingSteps:     missing,
		CompletedStepIDs: completed,
		ValidationErrors: map[StepID][]FieldError{},
	}
	if kind == KindProperty {
		summary.PropertyType = DraftPropertyType(steps)
	}
	if len(expected) > 0 {
		summary.CompletenessPercentage = int(math.Round(float64(len(completed)) / float64(len(expected)) * 100))
	}

	if verr := ValidateDraft(kind, data); verr != nil {
		summary.ValidationErrors = verr.Errors
	}
	summary.HasAllRequiredSteps = len(missing) == 0
	summary.IsValid = len(summary.ValidationErrors) == 0
	return summary
}
