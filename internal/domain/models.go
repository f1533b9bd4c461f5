package domain

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

// RootListField is the field of the root payload that lists the top-level categories
const RootListField = "types"

// Kind describes how a fetched payload is presented
type Kind int

const (
	KindLeaf Kind = iota // terminal record, shown as formatted JSON
	KindList             // non-empty sequence of child names
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	default:
		return "leaf"
	}
}

// Classify reports whether v is a navigable list or a leaf payload.
// Only a non-empty sequence is navigable; an empty sequence is a leaf.
func Classify(v any) Kind {
	if items, ok := v.([]any); ok && len(items) > 0 {
		return KindList
	}
	return KindLeaf
}

// Labels returns the entries of a list payload as navigation segments.
// Strings are used as-is; anything else uses its compact JSON text.
func Labels(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, Label(item))
	}
	return labels
}

// Label converts a single list entry into a segment
func Label(item any) string {
	if s, ok := item.(string); ok {
		return s
	}
	text, err := sonic.MarshalString(item)
	if err != nil {
		return fmt.Sprint(item)
	}
	return text
}

// Breadcrumb formats a path for display, "/" at the root
func Breadcrumb(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return "/" + strings.Join(path, "/")
}

// UnwrapRoot extracts the category list from a root payload.
// Returns nil when the payload is not an object or has no list field.
func UnwrapRoot(payload any) any {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	return obj[RootListField]
}
