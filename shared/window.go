package shared

// Window represents a contiguous inclusive index range into a price series.
type Window struct {
	Start int
	End   int
}

// Length returns the number of samples covered by the window.
func (w *Window) Length() int {
	return w.End - w.Start + 1
}

// SeparatedFrom reports whether the window is at least minGapDays away from
// the other window on both sides.
func (w *Window) SeparatedFrom(other Window, minGapDays int) bool {
	return w.End < other.Start-minGapDays || w.Start > other.End+minGapDays
}
