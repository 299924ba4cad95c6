package html

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

func controlID(el model.Element) string {
	key := el.Key
	if key == "" {
		key = el.Path.String()
	}
	replacer := strings.NewReplacer(".", "-", "#", "-", "/", "-", ":", "-")
	return "fk-" + replacer.Replace(key)
}

// fieldStyle sizes a field from its grid span or its width token.
func fieldStyle(el model.Element) string {
	if span, ok := spanOf(el.ColProps); ok {
		percent := strconv.FormatFloat(float64(span)/24*100, 'f', 4, 64)
		percent = strings.TrimRight(strings.TrimRight(percent, "0"), ".")
		return "flex:0 0 " + percent + "%"
	}
	if px, ok := el.Width.Pixels(); ok {
		return "width:" + strconv.Itoa(px) + "px"
	}
	return ""
}

func spanOf(props model.Props) (int, bool) {
	switch span := props["span"].(type) {
	case int:
		return span, span > 0 && span <= 24
	case int64:
		return int(span), span > 0 && span <= 24
	case float64:
		return int(span), span > 0 && span <= 24
	}
	return 0, false
}

func choiceKind(widget string) string {
	switch widget {
	case widgets.WidgetSelect, widgets.WidgetTreeSelect, widgets.WidgetCascader, widgets.WidgetAutoComplete, widgets.WidgetTransfer:
		return "select"
	case widgets.WidgetRadio, widgets.WidgetSegmented:
		return "radio"
	case widgets.WidgetCheckbox:
		return "checkbox"
	}
	return ""
}

func inputType(widget string) string {
	switch widget {
	case widgets.WidgetPassword:
		return "password"
	case widgets.WidgetDigit, widgets.WidgetMoney, widgets.WidgetRate:
		return "number"
	case widgets.WidgetSlider:
		return "range"
	case widgets.WidgetDate:
		return "date"
	case widgets.WidgetDateTime:
		return "datetime-local"
	case widgets.WidgetTime:
		return "time"
	case widgets.WidgetUploadButton, widgets.WidgetUploadDragger:
		return "file"
	}
	return "text"
}

func textValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = textValue(item)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(value)
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, _ := strconv.ParseBool(v)
		return parsed
	}
	return false
}

func optionViews(options []model.Option, value any) []map[string]any {
	selected := map[string]bool{}
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			selected[textValue(item)] = true
		}
	case []string:
		for _, item := range v {
			selected[item] = true
		}
	case nil:
	default:
		selected[textValue(v)] = true
	}

	out := make([]map[string]any, len(options))
	for i, option := range options {
		text := textValue(option.Value)
		out[i] = map[string]any{
			"label":    option.Label,
			"value":    text,
			"selected": selected[text],
		}
	}
	return out
}
