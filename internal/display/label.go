package display

import "sync"

// Label keeps the last text written to it.
type Label struct {
	mu   sync.RWMutex
	text string
}

func NewLabel() *Label {
	return &Label{}
}

func (l *Label) SetText(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
}

func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

func (l *Label) Release() {
	l.SetText("")
}
