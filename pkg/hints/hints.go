// Package hints narrows candidate words against the per-letter hint row
// shown during a round.
package hints

import (
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/bastiangx/guessr/internal/utils"
)

// Blank marks an unrevealed position in the textual hint form.
const Blank = '_'

// Cell is one letter position of the hint row.
type Cell struct {
	Char     rune
	Revealed bool
}

// Cells is the whole hint row, in display order.
type Cells []Cell

// AnswerRecorder receives the word when every position is revealed.
type AnswerRecorder interface {
	RecordAnswer(word string)
}

// Parse reads the textual hint form: '_' is unrevealed, any other rune is
// a revealed character.
func Parse(s string) Cells {
	cells := make(Cells, 0, len(s))
	for _, r := range s {
		if r == Blank {
			cells = append(cells, Cell{})
			continue
		}
		cells = append(cells, Cell{Char: r, Revealed: true})
	}
	return cells
}

// String renders cells back into the textual form accepted by Parse.
func (c Cells) String() string {
	var b strings.Builder
	for _, cell := range c {
		if cell.Revealed {
			b.WriteRune(cell.Char)
		} else {
			b.WriteRune(Blank)
		}
	}
	return b.String()
}

// FullyRevealed reports whether every position carries a character.
// An empty row is never fully revealed.
func (c Cells) FullyRevealed() bool {
	if len(c) == 0 {
		return false
	}
	for _, cell := range c {
		if !cell.Revealed {
			return false
		}
	}
	return true
}

// Word returns the revealed text, normalized. Only meaningful when
// FullyRevealed is true.
func (c Cells) Word() string {
	return utils.NormalizeWord(c.String())
}

// Equal reports whether two rows carry the same state at every position.
func (c Cells) Equal(other Cells) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i].Revealed != other[i].Revealed {
			return false
		}
		if c[i].Revealed && !utils.EqualFold(c[i].Char, other[i].Char) {
			return false
		}
	}
	return true
}

// Pattern is a compiled fixed-length matcher.
type Pattern struct {
	cells Cells
}

// Compile builds a Pattern from a hint row.
func Compile(cells Cells) Pattern {
	cp := make(Cells, len(cells))
	copy(cp, cells)
	return Pattern{cells: cp}
}

// Len is the number of positions the pattern expects.
func (p Pattern) Len() int {
	return len(p.cells)
}

// Match reports whether word has the pattern's length and agrees with
// every revealed position, ignoring case. A blank stands for one letter;
// spaces, hyphens and digits are always shown revealed by the game.
func (p Pattern) Match(word string) bool {
	if utils.RuneLen(word) != len(p.cells) {
		return false
	}
	i := 0
	for _, r := range word {
		cell := p.cells[i]
		if cell.Revealed {
			if !utils.EqualFold(cell.Char, r) {
				return false
			}
		} else if !unicode.IsLetter(r) {
			return false
		}
		i++
	}
	return true
}

// Apply narrows candidates against cells, keeping input order.
//
// A fully revealed row is not a filter: the word is handed to rec and the
// result is empty, since nothing is left to guess this round. An empty row
// means there is no pattern to apply and the candidates come back as a copy.
func Apply(candidates []string, cells Cells, rec AnswerRecorder) []string {
	if len(cells) == 0 {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}

	if cells.FullyRevealed() {
		if rec != nil {
			rec.RecordAnswer(cells.Word())
		}
		return []string{}
	}

	p := Compile(cells)
	return lo.Filter(candidates, func(w string, _ int) bool {
		return p.Match(w)
	})
}
