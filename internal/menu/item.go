// Package menu models the menu bar of a desktop application, decodes the
// shortcut attributes macOS reports for each menu item, and drives the
// AppleScript walker that lists them.
package menu

import "strings"

// Item is one menu item with its shortcut and its position in the menu tree.
type Item struct {
	// Modifier holds "+"-joined modifier names in Cmd, Ctrl, Shift, Opt order.
	Modifier string `json:"modifier" yaml:"modifier"`
	// Key is the shortcut character or special key name.
	Key string `json:"key" yaml:"key"`
	// Path lists menu labels from the top-level menu down to the item.
	Path []string `json:"path" yaml:"path"`
}

// HasShortcut reports whether the item carries a keyboard shortcut.
func (i Item) HasShortcut() bool {
	return i.Key != ""
}

// Depth returns the number of path segments.
func (i Item) Depth() int {
	return len(i.Path)
}

// Label returns the item's own label, the last path segment.
func (i Item) Label() string {
	if len(i.Path) == 0 {
		return ""
	}
	return i.Path[len(i.Path)-1]
}

// Shortcut renders the full shortcut, e.g. "Cmd+Shift+N". It is empty for
// items without a key.
func (i Item) Shortcut() string {
	if i.Key == "" {
		return ""
	}
	if i.Modifier == "" {
		return i.Key
	}
	return i.Modifier + "+" + i.Key
}

// Result is the outcome of one extraction.
type Result struct {
	AppName string `json:"app" yaml:"app"`
	Items   []Item `json:"items" yaml:"items"`
}

// MaxDepth returns the longest item path in the result, 0 when there are no items.
func (r Result) MaxDepth() int {
	depth := 0
	for _, it := range r.Items {
		if d := it.Depth(); d > depth {
			depth = d
		}
	}
	return depth
}

// String is used in debug logs.
func (i Item) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(i.Path, " > "))
	if sc := i.Shortcut(); sc != "" {
		b.WriteString(" [")
		b.WriteString(sc)
		b.WriteString("]")
	}
	return b.String()
}
