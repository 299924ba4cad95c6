package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/values"
)

// ErrIndexOutOfRange is returned by list actions for invalid item indices.
var ErrIndexOutOfRange = errors.New("render: list index out of range")

// keyNamespace derives stable item keys for lists without a keyed handle.
var keyNamespace = uuid.MustParse("5b0f4c9e-4a53-4d4b-9d0f-3c0a7f1e2d11")

// keyedHandle is implemented by handles that track a key per item.
type keyedHandle interface {
	Keys() []string
}

func listElement(node model.FieldNode, key string, opts Options) model.Element {
	name := node.Name
	if name.Empty() {
		name = model.Path{DefaultListName}
	}
	path := opts.ListPath.Join(name...)

	count := itemCount(opts.Values, path)
	var actions ActionHandle
	if opts.Actions != nil {
		actions = opts.Actions(path)
	}
	keys := itemKeys(actions, path, count)

	itemAt := func(i int, total int, key string) model.Element {
		itemPath := path.Index(i)
		list := &model.ListContext{
			Name:    path,
			Index:   i,
			Count:   total,
			Key:     key,
			Meta:    model.Props{"name": i, "key": key},
			Actions: actions,
		}

		itemOpts := opts
		itemOpts.List = list
		itemOpts.ListPath = itemPath

		children := make([]model.Element, 0, len(node.SubGroups))
		for gi, group := range node.SubGroups {
			children = append(children, RenderFieldGroup(group, gi, itemOpts))
		}
		return model.Element{
			Kind:     model.ElementListItem,
			Key:      key,
			Path:     itemPath,
			List:     list,
			Children: children,
		}
	}

	items := make([]model.Element, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, itemAt(i, count, keys[i]))
	}

	return model.Element{
		Kind:      model.ElementList,
		Key:       key,
		Name:      name,
		Path:      path,
		Label:     node.DisplayLabel(),
		ValueKind: node.ValueKind,
		Disabled:  node.Disabled,
		Required:  node.Required,
		Rules:     node.Rules,
		Children:  items,
		Extra:     node.ListOptions.Clone(),
		List:      opts.List,
		ItemAt: func(index int) model.Element {
			return itemAt(index, index+1, itemKeys(actions, path, index+1)[index])
		},
	}
}

func itemCount(reader model.ValueReader, path model.Path) int {
	if reader == nil {
		return 0
	}
	raw, ok := reader.Get(path.String())
	if !ok {
		return 0
	}
	items, ok := raw.([]any)
	if !ok {
		return 0
	}
	return len(items)
}

func itemKeys(actions ActionHandle, path model.Path, count int) []string {
	var tracked []string
	if keyed, ok := actions.(keyedHandle); ok {
		tracked = keyed.Keys()
	}
	keys := make([]string, count)
	for i := range keys {
		if i < len(tracked) {
			keys[i] = tracked[i]
			continue
		}
		keys[i] = uuid.NewSHA1(keyNamespace, []byte(path.Index(i).String())).String()
	}
	return keys
}

// ListActions edits one array inside a values.Store and keeps a key per
// item that follows the item through moves.
type ListActions struct {
	store *values.Store
	path  string

	mu   sync.Mutex
	keys []string
}

// NewListActions binds a handle to the array at path.
func NewListActions(store *values.Store, path model.Path) *ListActions {
	la := &ListActions{store: store, path: path.String()}
	la.keys = make([]string, store.Len(la.path))
	for i := range la.keys {
		la.keys[i] = uuid.NewString()
	}
	return la
}

// Add appends a copy of defaults.
func (l *ListActions) Add(defaults map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.store.Update(l.path, func(items []any) ([]any, error) {
		return append(items, values.Clone(defaults)), nil
	})
	if err != nil {
		return fmt.Errorf("render: add list item: %w", err)
	}
	l.keys = append(l.keys, uuid.NewString())
	return nil
}

// Remove deletes the item at index.
func (l *ListActions) Remove(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.store.Update(l.path, func(items []any) ([]any, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		return append(items[:index], items[index+1:]...), nil
	})
	if err != nil {
		return err
	}
	if index < len(l.keys) {
		l.keys = append(l.keys[:index], l.keys[index+1:]...)
	}
	return nil
}

// Move relocates the item at from so it ends up at to.
func (l *ListActions) Move(from, to int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.store.Update(l.path, func(items []any) ([]any, error) {
		if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
			return nil, fmt.Errorf("%w: %d -> %d", ErrIndexOutOfRange, from, to)
		}
		return move(items, from, to), nil
	})
	if err != nil {
		return err
	}
	if from < len(l.keys) && to < len(l.keys) {
		l.keys = move(l.keys, from, to)
	}
	return nil
}

// Count returns the current number of items.
func (l *ListActions) Count() int {
	return l.store.Len(l.path)
}

// Keys returns the item keys in order.
func (l *ListActions) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.keys...)
}

func move[T any](items []T, from, to int) []T {
	item := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]T{item}, items[to:]...)...)
	return items
}

// Lists hands out one ListActions per array path of a store. Its Handle
// method is an ActionFactory.
type Lists struct {
	store *values.Store

	mu      sync.Mutex
	handles map[string]*ListActions
}

// NewLists binds list handles to store.
func NewLists(store *values.Store) *Lists {
	return &Lists{store: store, handles: make(map[string]*ListActions)}
}

// Handle returns the shared handle for path.
func (l *Lists) Handle(path model.Path) ActionHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := path.String()
	if handle, ok := l.handles[key]; ok {
		return handle
	}
	handle := NewListActions(l.store, path)
	l.handles[key] = handle
	return handle
}
