package cli

import (
	"github.com/charmbracelet/log"

	"github.com/bastiangx/guessr/pkg/engine"
)

// maxShown caps how many candidates a view prints.
const maxShown = 15

// Printer is the terminal Display and Submitter.
type Printer struct {
	log *log.Logger
}

// NewPrinter prints through l.
func NewPrinter(l *log.Logger) *Printer {
	return &Printer{log: l}
}

// Show implements engine.Display.
func (p *Printer) Show(v engine.View) {
	PrintView(p.log, v)
}

// Submit implements engine.Submitter.
func (p *Printer) Submit(word string) {
	p.log.Printf("→ submit %s", colorWord(word))
}

// PrintView prints the remaining count and the top of the ranking.
func PrintView(l *log.Logger, v engine.View) {
	l.Printf("Remaining Guesses: %d", v.Remaining)
	for i, w := range v.Words {
		if i == maxShown {
			l.Printf("    ... %d more", len(v.Words)-maxShown)
			break
		}
		l.Printf("%2d. %s", i+1, colorWord(w))
	}
}
