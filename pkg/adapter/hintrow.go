package adapter

import (
	"slices"

	"github.com/bastiangx/guessr/pkg/engine"
	"github.com/bastiangx/guessr/pkg/hints"
)

// HintRow remembers the last hint row the page reported. The row and the
// drawing banner arrive as separate observations in either order, so the
// banner's RoundStart is filled from here.
//
// Not safe for concurrent use; each front end reads on one goroutine.
type HintRow struct {
	cells hints.Cells
}

// Update stores the row and returns the event announcing it.
func (h *HintRow) Update(cells hints.Cells) engine.HintsChanged {
	h.cells = slices.Clone(cells)
	return engine.HintsChanged{Hints: cells}
}

// Attach fills a RoundStart that carries no row with the stored one. A
// fully revealed row is the previous round's answer and is left out.
// Other events pass through unchanged.
func (h *HintRow) Attach(ev engine.Event) engine.Event {
	rs, ok := ev.(engine.RoundStart)
	if !ok || rs.Hints != nil || len(h.cells) == 0 || h.cells.FullyRevealed() {
		return ev
	}
	rs.Hints = slices.Clone(h.cells)
	return rs
}
