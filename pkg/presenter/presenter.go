// Package presenter groups a record collection for display and turns user
// actions on it into intents. It performs no I/O: the owning controller
// dispatches intents and refreshes the collection it holds.
package presenter

import (
	"cmp"
	"context"
	"slices"
)

// Section declares a fixed group that is always rendered, even when empty.
type Section struct {
	Key          string
	Title        string
	EmptyMessage string
}

// EmptyState is the whole-view placeholder for a collection with no records.
type EmptyState struct {
	Title   string
	Message string
}

// Group is one rendered section of a view.
type Group[T any] struct {
	Key          string
	Title        string
	EmptyMessage string
	Items        []T
}

// Count returns the number of items in the group.
func (g Group[T]) Count() int {
	return len(g.Items)
}

// Empty reports whether the group holds no items.
func (g Group[T]) Empty() bool {
	return len(g.Items) == 0
}

// View is a grouped, ordered projection of a collection.
type View[T any] struct {
	Groups     []Group[T]
	Total      int
	EmptyState EmptyState
}

// Empty reports whether the whole collection is empty. When true the
// view renders EmptyState and no groups.
func (v View[T]) Empty() bool {
	return v.Total == 0
}

// Layout describes how a collection is grouped and ordered.
type Layout[T any] struct {
	// Key returns the discriminant of a record. A nil Key places every
	// record in a single untitled group.
	Key func(T) string

	// Order returns the display position of a record.
	Order func(T) int

	// Sections fixes groups that are rendered even when empty. Records whose
	// key matches no section get a group of their own, in first-seen order.
	Sections []Section

	// Title derives the title of a group not declared in Sections.
	Title func(key string) string

	Empty EmptyState
}

// Build projects items through layout. Items keep their source order
// among equal Order values.
func Build[T any](items []T, layout Layout[T]) View[T] {
	view := View[T]{EmptyState: layout.Empty}

	keyOf := layout.Key
	if keyOf == nil {
		keyOf = func(T) string { return "" }
	}

	index := make(map[string]int, len(layout.Sections))
	for _, s := range layout.Sections {
		index[s.Key] = len(view.Groups)
		view.Groups = append(view.Groups, Group[T]{
			Key:          s.Key,
			Title:        s.Title,
			EmptyMessage: s.EmptyMessage,
			Items:        []T{},
		})
	}

	for _, item := range items {
		key := keyOf(item)
		i, ok := index[key]
		if !ok {
			title := key
			if layout.Title != nil {
				title = layout.Title(key)
			}
			i = len(view.Groups)
			index[key] = i
			view.Groups = append(view.Groups, Group[T]{Key: key, Title: title})
		}
		view.Groups[i].Items = append(view.Groups[i].Items, item)
		view.Total++
	}

	if layout.Order != nil {
		for i := range view.Groups {
			slices.SortStableFunc(view.Groups[i].Items, func(a, b T) int {
				return cmp.Compare(layout.Order(a), layout.Order(b))
			})
		}
	}

	if view.Total == 0 {
		view.Groups = nil
	}

	return view
}

// IntentKind identifies what the user asked to do with a record.
type IntentKind int

const (
	IntentEdit IntentKind = iota + 1
	IntentDelete
)

func (k IntentKind) String() string {
	switch k {
	case IntentEdit:
		return "edit"
	case IntentDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Intent is a user action emitted by a view. Edit intents carry the
// selected record; delete intents carry only its identifier.
type Intent[T any] struct {
	Kind   IntentKind
	Record T
	ID     string
}

// Edit creates an edit intent for record.
func Edit[T any](record T) Intent[T] {
	return Intent[T]{Kind: IntentEdit, Record: record}
}

// Delete creates a delete intent for the record id.
func Delete[T any](id string) Intent[T] {
	return Intent[T]{Kind: IntentDelete, ID: id}
}

// Dispatcher consumes intents. The owning controller is the single dispatcher
// for its collection.
type Dispatcher[T any] interface {
	Dispatch(ctx context.Context, intent Intent[T]) error
}
