package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	_ "github.com/goliatone/go-formkit/pkg/feerate" // feeRate validator
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	// ErrEmpty is returned for files without any form.
	ErrEmpty = errors.New("definition: empty definition")
	// ErrDuplicate is returned when two files declare the same form name.
	ErrDuplicate = errors.New("definition: duplicate form")
	// ErrNotFound is returned by Set.Form for unknown names.
	ErrNotFound = errors.New("definition: form not found")
)

// Option configures Load.
type Option func(*loader)

type loader struct {
	root       string
	validators *validation.Registry
}

// WithRoot restricts the walk to a directory of the filesystem.
func WithRoot(dir string) Option {
	return func(l *loader) {
		if dir = strings.TrimSpace(dir); dir != "" {
			l.root = dir
		}
	}
}

// WithValidators checks rule validator names against registry instead of
// the default validation registry.
func WithValidators(registry *validation.Registry) Option {
	return func(l *loader) { l.validators = registry }
}

// Set is a concurrency-safe collection of forms keyed by name.
type Set struct {
	mu    sync.RWMutex
	forms map[string]Form
}

// NewSet builds a set from forms.
func NewSet(forms ...Form) (*Set, error) {
	set := &Set{forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		if err := set.Add(form); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Add registers a form. Names must be unique.
func (s *Set) Add(form Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return errors.New("definition: form name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, dup := s.forms[form.Name]; dup {
		return fmt.Errorf("%w: %q declared in %s and %s", ErrDuplicate, form.Name, existing.Source, form.Source)
	}
	s.forms[form.Name] = form
	return nil
}

// Names returns the form names in sorted order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Form returns the named form.
func (s *Set) Form(name string) (Form, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	form, ok := s.forms[name]
	if !ok {
		return Form{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return form, nil
}

// Len returns the number of forms.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}

// Load walks fsys and reads every .json, .yaml and .yml file.
func Load(fsys fs.FS, opts ...Option) (*Set, error) {
	l := loader{root: ".", validators: validation.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&l)
		}
	}

	set, _ := NewSet()
	err := fs.WalkDir(fsys, l.root, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || formatOf(name) == "" {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", name, err)
		}
		forms, err := l.parse(name, data)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if err := set.Add(form); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Parse decodes a single definition document. The format follows the file
// extension of name.
func Parse(name string, data []byte) ([]Form, error) {
	l := loader{validators: validation.Default()}
	return l.parse(name, data)
}

func formatOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

func (l loader) parse(name string, data []byte) ([]Form, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, name)
	}

	var file fileDef
	switch formatOf(name) {
	case "json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("definition: decode %s: %w", name, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("definition: decode %s: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("definition: unsupported file %s", name)
	}
	if len(file.Forms) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, name)
	}

	names := make([]string, 0, len(file.Forms))
	for formName := range file.Forms {
		names = append(names, formName)
	}
	sort.Strings(names)

	forms := make([]Form, 0, len(names))
	for _, formName := range names {
		def := file.Forms[formName]
		groups, err := l.groups(def.Groups, formName)
		if err != nil {
			return nil, fmt.Errorf("definition: %s: %w", name, err)
		}
		forms = append(forms, Form{
			Name:            formName,
			Title:           def.Title,
			Subtitle:        def.Subtitle,
			Grid:            def.Grid,
			DefaultWidth:    model.Width(def.DefaultWidth),
			DefaultColProps: normalizeProps(def.DefaultColProps),
			Groups:          groups,
			Source:          name,
		})
	}
	return forms, nil
}

func (l loader) groups(defs []groupDef, scope string) ([]model.FieldGroup, error) {
	groups := make([]model.FieldGroup, 0, len(defs))
	for i, def := range defs {
		group := model.FieldGroup{
			Title:           def.Title,
			DefaultWidth:    model.Width(def.DefaultWidth),
			DefaultColProps: normalizeProps(def.DefaultColProps),
			Meta:            normalizeProps(def.Meta),
		}
		for j, field := range def.Fields {
			node, err := l.field(field, fmt.Sprintf("%s.groups[%d].fields[%d]", scope, i, j))
			if err != nil {
				return nil, err
			}
			group.Fields = append(group.Fields, node)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

func (l loader) field(def fieldDef, scope string) (model.FieldNode, error) {
	node := model.FieldNode{
		Name:         model.ParsePath(def.Name),
		Label:        def.Label,
		ValueKind:    model.ValueKind(def.ValueKind),
		Required:     def.Required,
		CreateHidden: def.CreateHidden,
		EditDisabled: def.EditDisabled,
		Disabled:     def.Disabled,
		Whitespace:   def.Whitespace,
		Placeholder:  def.Placeholder,
		Tooltip:      def.Tooltip,
		Width:        model.Width(def.Width),
		ColProps:     normalizeProps(def.ColProps),
		FieldProps:   normalizeProps(def.FieldProps),
		Extra:        normalizeProps(def.Extra),
		ListOptions:  normalizeProps(def.ListOptions),
		Options:      def.Options,
	}
	for _, rule := range def.Rules {
		kind := model.RuleKind(rule.Kind)
		if kind == "" {
			kind = model.RuleCustom
		}
		if kind == model.RuleCustom {
			if rule.Validator == "" {
				return model.FieldNode{}, fmt.Errorf("%s: custom rule without validator", scope)
			}
			if _, ok := l.validators.Lookup(rule.Validator); !ok {
				return model.FieldNode{}, fmt.Errorf("%s: %w: %q", scope, validation.ErrUnknownValidator, rule.Validator)
			}
		}
		node.Rules = append(node.Rules, model.Rule{
			Kind:      kind,
			Message:   rule.Message,
			Validator: rule.Validator,
			Params:    rule.Params,
		})
	}
	if len(def.SubGroups) > 0 {
		sub, err := l.groups(def.SubGroups, scope)
		if err != nil {
			return model.FieldNode{}, err
		}
		node.SubGroups = sub
	}
	return node, nil
}

// normalizeProps converts the nested maps some decoders produce into
// map[string]any so renderers see a single shape.
func normalizeProps(props model.Props) model.Props {
	if len(props) == 0 {
		return nil
	}
	out := make(model.Props, len(props))
	for key, value := range props {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalizeValue(v)
		}
		return out
	case model.Props:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalizeValue(v)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = normalizeValue(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeValue(v)
		}
		return out
	}
	return value
}
