package hypertext

// FocusRing tracks the focusable links of a page in document order.
// Movement clamps at both ends rather than wrapping, so holding a
// direction key parks focus on the first or last link.
type FocusRing struct {
	links   []*Node
	current int
}

// NewFocusRing collects the links of a tree in document order. The
// first link starts focused; a page with no links has no focus.
func NewFocusRing(root *Node) *FocusRing {
	r := &FocusRing{current: -1}
	if root != nil {
		r.links = collectLinks(root, nil)
	}
	if len(r.links) > 0 {
		r.current = 0
	}
	return r
}

func collectLinks(n *Node, acc []*Node) []*Node {
	if n.Kind == KindLink {
		acc = append(acc, n)
	}
	for _, c := range n.Children {
		acc = collectLinks(c, acc)
	}
	return acc
}

// Len returns the number of focusable links.
func (r *FocusRing) Len() int {
	return len(r.links)
}

// Current returns the focused link, if any.
func (r *FocusRing) Current() (*Node, bool) {
	if r.current < 0 || r.current >= len(r.links) {
		return nil, false
	}
	return r.links[r.current], true
}

// Move shifts focus by delta, clamping at the ends.
func (r *FocusRing) Move(delta int) {
	if len(r.links) == 0 {
		return
	}
	r.current += delta
	if r.current < 0 {
		r.current = 0
	}
	if r.current >= len(r.links) {
		r.current = len(r.links) - 1
	}
}

// First focuses the first link.
func (r *FocusRing) First() {
	if len(r.links) > 0 {
		r.current = 0
	}
}

// Last focuses the last link.
func (r *FocusRing) Last() {
	if len(r.links) > 0 {
		r.current = len(r.links) - 1
	}
}

// Activate calls fn with the focused link's target. With nothing
// focused it does nothing.
func (r *FocusRing) Activate(fn func(url string)) {
	if link, ok := r.Current(); ok {
		fn(link.URL)
	}
}
