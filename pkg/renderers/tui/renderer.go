package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/values"
)

var _ render.Renderer = (*Renderer)(nil)

// Renderer implements render.Renderer for terminal sessions. Render prompts
// for the document's fields and returns the collected values.
type Renderer struct {
	session *Session
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	return &Renderer{session: NewSession(options...)}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.session.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs a session seeded with doc.Values and serializes the result.
func (r *Renderer) Render(ctx context.Context, doc render.Document, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store := values.NewStore(doc.Values)
	if doc.Title != "" {
		if err := r.session.driver.Info(ctx, r.session.theme.Title.Render(doc.Title)); err != nil {
			return nil, err
		}
	}
	if err := r.session.Run(ctx, doc.Elements, store); err != nil {
		return nil, err
	}

	collected := store.Snapshot()
	if r.session.submitTransformer != nil {
		var err error
		collected, err = r.session.submitTransformer(collected)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(collected)
}

func (r *Renderer) serialize(collected map[string]any) ([]byte, error) {
	switch r.session.outputFormat {
	case OutputFormatJSON:
		return json.Marshal(collected)
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(collected)), nil
	case OutputFormatPrettyText:
		return []byte(r.prettyPrint(collected)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, r.session.outputFormat)
	}
}

func flattenForm(collected map[string]any) string {
	flattened := url.Values{}
	flatten("", collected, flattened)
	return flattened.Encode()
}

// flatten writes dotted keys, matching the paths field names use.
func flatten(prefix string, value any, out url.Values) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(join(prefix, key), val, out)
		}
	case []any:
		for idx, val := range v {
			flatten(join(prefix, strconv.Itoa(idx)), val, out)
		}
	case nil:
		out.Set(prefix, "")
	default:
		out.Set(prefix, fmt.Sprint(v))
	}
}

func (r *Renderer) prettyPrint(collected map[string]any) string {
	lines := map[string]string{}
	pretty("", collected, lines)
	keys := make([]string, 0, len(lines))
	for key := range lines {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(r.session.theme.Key.Render(key))
		b.WriteString(" = ")
		b.WriteString(lines[key])
		b.WriteByte('\n')
	}
	return b.String()
}

func pretty(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			pretty(join(prefix, key), val, out)
		}
	case []any:
		for idx, val := range v {
			pretty(fmt.Sprintf("%s[%d]", prefix, idx), val, out)
		}
	default:
		if prefix != "" {
			out[prefix] = fmt.Sprint(v)
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
