package pager

// Event is a normalized wheel event
type Event interface {
	// Delta returns the value of the named delta field
	Delta(field string) (float64, bool)
}

// WheelEvent maps delta field names to values, e.g. {"deltaY": 40}
type WheelEvent map[string]float64

// Delta implements Event
func (e WheelEvent) Delta(field string) (float64, bool) {
	v, ok := e[field]
	return v, ok
}
