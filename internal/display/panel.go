package display

import (
	"strings"
	"sync"

	"github.com/markusressel/temp2go/internal/ui"
)

const panelSeparator = "  "

// Panel renders a row of labels as a single line, the way a status bar shows them.
// Every update of a slot re-renders the whole row.
type Panel struct {
	mu     sync.Mutex
	order  []string
	texts  map[string]string
	render func(line string)
}

// NewTerminalPanel prints every rendered row to the terminal
func NewTerminalPanel() *Panel {
	return NewPanel(func(line string) {
		ui.Printfln("%s", line)
	})
}

func NewPanel(render func(line string)) *Panel {
	return &Panel{
		texts:  map[string]string{},
		render: render,
	}
}

// Slot returns the sink for the slot with the given id, slots are rendered in creation order.
func (p *Panel) Slot(id string) Sink {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.texts[id]; !exists {
		p.order = append(p.order, id)
		p.texts[id] = ""
	}
	return &panelSlot{panel: p, id: id}
}

func (p *Panel) Line() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.line()
}

func (p *Panel) line() string {
	var parts []string
	for _, id := range p.order {
		if text := p.texts[id]; len(text) > 0 {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, panelSeparator)
}

func (p *Panel) set(id string, text string) {
	p.mu.Lock()
	if p.texts[id] == text {
		p.mu.Unlock()
		return
	}
	p.texts[id] = text
	line := p.line()
	p.mu.Unlock()

	p.render(line)
}

type panelSlot struct {
	panel *Panel
	id    string
}

func (s *panelSlot) SetText(text string) {
	s.panel.set(s.id, text)
}
