package event

// HeadUpdate signals that the value chain's head height advanced. The queue
// uses it to promote entries whose confirmation delay has elapsed.
type HeadUpdate struct {
	Height int64
}
