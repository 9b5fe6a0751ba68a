package booking

// VisibleCount is the number of dates shown in the navigator window at once.
const VisibleCount = 5

// Navigator is a bounded sliding window over the date sequence. Paging moves
// the window by a full page and clamps at both ends; selection never moves
// the window. For right-to-left languages the arrows mirror visually, but the
// index arithmetic here is direction-agnostic.
type Navigator struct {
	StartIndex int `json:"start_index"`
	Length     int `json:"length"`
}

// NewNavigator returns a navigator positioned at the start of a sequence of
// the given length.
func NewNavigator(length int) Navigator {
	return Navigator{StartIndex: 0, Length: length}
}

// PageForward advances the window one page, clamping so it never runs past
// the end.
func (n *Navigator) PageForward() {
	n.StartIndex = min(n.StartIndex+VisibleCount, max(0, n.Length-VisibleCount))
}

// PageBackward moves the window one page back, clamping at zero.
func (n *Navigator) PageBackward() {
	n.StartIndex = max(n.StartIndex-VisibleCount, 0)
}

// CanPageForward reports whether the forward control is active.
func (n *Navigator) CanPageForward() bool {
	return n.StartIndex+VisibleCount < n.Length
}

// CanPageBackward reports whether the backward control is active.
func (n *Navigator) CanPageBackward() bool {
	return n.StartIndex > 0
}

// Window returns the [start, end) bounds of the visible slice.
func (n *Navigator) Window() (start, end int) {
	start = n.StartIndex
	end = min(start+VisibleCount, n.Length)
	return start, end
}
