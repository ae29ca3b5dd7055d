package kad

// Status of a search. transitions are one way: idle -> searching -> done or
// cancelled.
type Status uint32

const (
	StatusIdle Status = iota
	StatusSearching
	StatusDone
	StatusCancelled
)

func (t Status) String() string {
	switch t {
	case StatusIdle:
		return "idle"
	case StatusSearching:
		return "searching"
	case StatusDone:
		return "done"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (t Status) terminal() bool {
	return t == StatusDone || t == StatusCancelled
}
