// Package page derives the create/update context of a screen and prepares
// the persist (create or edit) screen for rendering.
package page

import (
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Navigator is the host's routing collaborator.
type Navigator interface {
	Navigate(pathname string, params map[string]any)
	GoBack()
	// Params returns the data handed over by the previous screen, or nil.
	Params() map[string]any
	Pathname() string
}

// DeriveContext marks paths ending in "create" as create pages and paths
// ending in "update" as update pages.
func DeriveContext(pathname string) model.PageContext {
	pathname = strings.TrimRight(strings.TrimSpace(pathname), "/")
	return model.PageContext{
		Created: strings.HasSuffix(pathname, "create"),
		Updated: strings.HasSuffix(pathname, "update"),
	}
}

// SelectedRow returns the first entry of params["selectedRows"], the
// convention list screens use to hand a record to the next screen.
func SelectedRow(params map[string]any) (map[string]any, bool) {
	rows, ok := params["selectedRows"].([]any)
	if !ok {
		if typed, isMaps := params["selectedRows"].([]map[string]any); isMaps {
			rows = make([]any, len(typed))
			for i, row := range typed {
				rows[i] = row
			}
			ok = true
		}
	}
	if !ok {
		return nil, false
	}
	if len(rows) == 0 {
		return map[string]any{}, true
	}
	row, _ := rows[0].(map[string]any)
	if row == nil {
		row = map[string]any{}
	}
	return row, true
}

// Memory is an in-process Navigator. It records every navigation so CLI
// sessions and tests can inspect where a screen tried to go.
type Memory struct {
	mu      sync.Mutex
	path    string
	params  map[string]any
	history []Visit
	backs   int
}

// Visit is one recorded navigation.
type Visit struct {
	Pathname string
	Params   map[string]any
}

// NewMemory starts at pathname with params.
func NewMemory(pathname string, params map[string]any) *Memory {
	return &Memory{path: pathname, params: params}
}

func (m *Memory) Navigate(pathname string, params map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, Visit{Pathname: m.path, Params: m.params})
	m.path, m.params = pathname, params
}

func (m *Memory) GoBack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backs++
	if n := len(m.history); n > 0 {
		last := m.history[n-1]
		m.history = m.history[:n-1]
		m.path, m.params = last.Pathname, last.Params
	}
}

func (m *Memory) Params() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params
}

func (m *Memory) Pathname() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.path
}

// Backs counts GoBack calls.
func (m *Memory) Backs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.backs
}
