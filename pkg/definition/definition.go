// Package definition loads named form definitions from JSON or YAML files.
//
// A definition file holds a single top-level "forms" map:
//
//	forms:
//	  merchant:
//	    title: 商户
//	    grid: true
//	    groups:
//	      - title: 基础信息
//	        fields:
//	          - name: name
//	            label: 名称
//	            required: true
//
// Field names are dotted paths. Rule validators must be registered with
// pkg/validation before the definitions are loaded; the feeRate validator is
// always available.
package definition

import (
	"github.com/goliatone/go-formkit/pkg/model"
)

// Form is one named, renderable form.
type Form struct {
	Name            string
	Title           string
	Subtitle        string
	Grid            bool
	DefaultWidth    model.Width
	DefaultColProps model.Props
	Groups          []model.FieldGroup
	// Source is the file the form was declared in.
	Source string
}

type fileDef struct {
	Forms map[string]formDef `json:"forms" yaml:"forms"`
}

type formDef struct {
	Title           string      `json:"title" yaml:"title"`
	Subtitle        string      `json:"subtitle" yaml:"subtitle"`
	Grid            bool        `json:"grid" yaml:"grid"`
	DefaultWidth    string      `json:"defaultWidth" yaml:"defaultWidth"`
	DefaultColProps model.Props `json:"defaultColProps" yaml:"defaultColProps"`
	Groups          []groupDef  `json:"groups" yaml:"groups"`
}

type groupDef struct {
	Title           string      `json:"title" yaml:"title"`
	DefaultWidth    string      `json:"defaultWidth" yaml:"defaultWidth"`
	DefaultColProps model.Props `json:"defaultColProps" yaml:"defaultColProps"`
	Meta            model.Props `json:"meta" yaml:"meta"`
	Fields          []fieldDef  `json:"fields" yaml:"fields"`
}

type fieldDef struct {
	Name         string         `json:"name" yaml:"name"`
	Label        string         `json:"label" yaml:"label"`
	ValueKind    string         `json:"valueKind" yaml:"valueKind"`
	Required     bool           `json:"required" yaml:"required"`
	CreateHidden bool           `json:"createHidden" yaml:"createHidden"`
	EditDisabled bool           `json:"editDisabled" yaml:"editDisabled"`
	Disabled     bool           `json:"disabled" yaml:"disabled"`
	Whitespace   *bool          `json:"whitespace" yaml:"whitespace"`
	Placeholder  string         `json:"placeholder" yaml:"placeholder"`
	Tooltip      string         `json:"tooltip" yaml:"tooltip"`
	Width        string         `json:"width" yaml:"width"`
	ColProps     model.Props    `json:"colProps" yaml:"colProps"`
	FieldProps   model.Props    `json:"fieldProps" yaml:"fieldProps"`
	Extra        model.Props    `json:"extra" yaml:"extra"`
	ListOptions  model.Props    `json:"listOptions" yaml:"listOptions"`
	Options      []model.Option `json:"options" yaml:"options"`
	Rules        []ruleDef      `json:"rules" yaml:"rules"`
	SubGroups    []groupDef     `json:"subGroups" yaml:"subGroups"`
}

type ruleDef struct {
	Kind      string            `json:"kind" yaml:"kind"`
	Message   string            `json:"message" yaml:"message"`
	Validator string            `json:"validator" yaml:"validator"`
	Params    map[string]string `json:"params" yaml:"params"`
}
