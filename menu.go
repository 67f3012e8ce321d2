package scrim

// MenuItem is one entry of a MenuTree: a leaf with a callback, a nested
// subtree, or a delimiter line
type MenuItem struct {
	label string
	cb    Callback
	tree  *MenuTree
	delim bool
}

// Label returns the item's title, empty for delimiters
func (i *MenuItem) Label() string {
	return i.label
}

// IsDelimiter reports whether the item is a separator line
func (i *MenuItem) IsDelimiter() bool {
	return i.delim
}

// IsLeaf reports whether the item triggers a callback
func (i *MenuItem) IsLeaf() bool {
	return !i.delim && i.tree == nil
}

// IsSubtree reports whether the item opens a nested menu
func (i *MenuItem) IsSubtree() bool {
	return i.tree != nil
}

// MenuTree is an ordered list of menu items
type MenuTree struct {
	children []*MenuItem
}

// NewMenuTree creates an empty menu
func NewMenuTree() *MenuTree {
	return &MenuTree{}
}

// Leaf appends an entry running cb when activated. Chainable.
func (t *MenuTree) Leaf(label string, cb Callback) *MenuTree {
	t.children = append(t.children, &MenuItem{label: label, cb: cb})
	return t
}

// Subtree appends an entry opening a nested menu. Chainable.
func (t *MenuTree) Subtree(label string, sub *MenuTree) *MenuTree {
	t.children = append(t.children, &MenuItem{label: label, tree: sub})
	return t
}

// Delimiter appends a separator line. Chainable.
func (t *MenuTree) Delimiter() *MenuTree {
	t.children = append(t.children, &MenuItem{delim: true})
	return t
}

// Len returns the number of items
func (t *MenuTree) Len() int {
	return len(t.children)
}

// IsEmpty reports whether the menu has no items
func (t *MenuTree) IsEmpty() bool {
	return len(t.children) == 0
}

// Clear removes all items
func (t *MenuTree) Clear() {
	t.children = nil
}
