package display

// Sink is a write-only display target for a single label, like a panel widget.
type Sink interface {
	SetText(text string)
}

// Releaser is implemented by sinks that hold on to resources which
// have to be cleaned up when the display is torn down.
type Releaser interface {
	Release()
}

// Release releases the given sink, if it holds any resources.
func Release(sink Sink) {
	if r, ok := sink.(Releaser); ok {
		r.Release()
	}
}

type multiSink []Sink

// Multi returns a sink that forwards every update to all given sinks.
func Multi(sinks ...Sink) Sink {
	var result multiSink
	for _, s := range sinks {
		if s != nil {
			result = append(result, s)
		}
	}
	return result
}

func (m multiSink) SetText(text string) {
	for _, s := range m {
		s.SetText(text)
	}
}

func (m multiSink) Release() {
	for _, s := range m {
		Release(s)
	}
}
