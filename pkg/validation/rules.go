package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Rule is the constraint type attached to fields by the renderer.
type Rule = model.Rule

// Func checks a single value. A nil return means the value passed.
type Func func(value any) error

const (
	defaultRequiredMessage   = "该字段是必填字段"
	defaultWhitespaceMessage = "该字段不能只包含空白字符"
)

// ErrUnknownValidator is returned when a custom rule names a validator that
// was never registered.
var ErrUnknownValidator = errors.New("validation: unknown validator")

// Error describes a failed rule. Reason is the user-facing message.
type Error struct {
	Rule   model.RuleKind
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Reason
}

// Failed builds an *Error for a custom validator.
func Failed(reason string) *Error {
	return &Error{Rule: model.RuleCustom, Reason: reason}
}

// Registry maps validator names to functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register stores fn under name. Later registrations replace earlier ones.
func (r *Registry) Register(name string, fn Func) {
	name = strings.TrimSpace(name)
	if r == nil || name == "" || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.funcs == nil {
		r.funcs = make(map[string]Func)
	}
	r.funcs[name] = fn
}

// Lookup returns the validator registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[strings.TrimSpace(name)]
	return fn, ok
}

// Names lists registered validators sorted alphabetically.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var defaultRegistry = NewRegistry()

// Register adds fn to the process-wide registry.
func Register(name string, fn Func) {
	defaultRegistry.Register(name, fn)
}

// Lookup reads from the process-wide registry.
func Lookup(name string) (Func, bool) {
	return defaultRegistry.Lookup(name)
}

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Validate checks value against rule using the process-wide registry.
func Validate(rule Rule, value any) error {
	return defaultRegistry.Validate(rule, value)
}

// Validate checks value against rule. It returns nil or an *Error; an
// unregistered validator name yields an error wrapping ErrUnknownValidator.
func (r *Registry) Validate(rule Rule, value any) error {
	switch rule.Kind {
	case model.RuleRequired:
		if IsEmpty(value) {
			return &Error{Rule: rule.Kind, Reason: messageOr(rule.Message, defaultRequiredMessage)}
		}
	case model.RuleWhitespace:
		if text, ok := value.(string); ok && text != "" && strings.TrimSpace(text) == "" {
			return &Error{Rule: rule.Kind, Reason: messageOr(rule.Message, defaultWhitespaceMessage)}
		}
	case model.RuleCustom:
		fn := Func(rule.Check)
		if fn == nil && rule.Validator != "" {
			var ok bool
			if fn, ok = r.Lookup(rule.Validator); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownValidator, rule.Validator)
			}
		}
		if fn == nil {
			return nil
		}
		if err := fn(value); err != nil {
			var verr *Error
			if errors.As(err, &verr) {
				return verr
			}
			return &Error{Rule: rule.Kind, Reason: messageOr(rule.Message, err.Error())}
		}
	default:
		return fmt.Errorf("validation: unsupported rule kind %q", rule.Kind)
	}
	return nil
}

// ValidateAll runs every rule in order and collects the failures.
func ValidateAll(rules []Rule, value any) []error {
	return defaultRegistry.ValidateAll(rules, value)
}

// ValidateAll runs every rule in order and collects the failures.
func (r *Registry) ValidateAll(rules []Rule, value any) []error {
	var errs []error
	for _, rule := range rules {
		if err := r.Validate(rule, value); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// IsEmpty reports whether value counts as missing for the required rule.
func IsEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case string:
		return typed == ""
	case decimal.NullDecimal:
		return !typed.Valid
	case *decimal.NullDecimal:
		return typed == nil || !typed.Valid
	case interface{ IsEmpty() bool }:
		return typed.IsEmpty()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func messageOr(message, fallback string) string {
	if strings.TrimSpace(message) != "" {
		return message
	}
	return fallback
}
