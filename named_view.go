package scrim

// NamedView attaches an identifier to its child so selectors can reach it
// anywhere in the tree
type NamedView struct {
	ViewWrapper
	name string
}

// Named wraps v under the given name
func Named(name string, v View) *NamedView {
	return &NamedView{ViewWrapper: WrapView(v), name: name}
}

// Name returns the identifier
func (n *NamedView) Name() string {
	return n.name
}

func (n *NamedView) CallOnAny(sel Selector, fn func(View)) {
	if sel.Matches(n) {
		fn(n.child)
		return
	}
	n.child.CallOnAny(sel, fn)
}

func (n *NamedView) FocusView(sel Selector) error {
	if sel.Matches(n) {
		return nil
	}
	return n.child.FocusView(sel)
}
