package recovery

import "strings"

// CodeLength is the number of one-time-code input cells.
const CodeLength = 6

// OTPInput models the six single-digit cells of the code entry form,
// including which cell holds focus. All methods are single-goroutine;
// callers serialize access.
type OTPInput struct {
	cells [CodeLength]string
	focus int
}

func NewOTPInput() *OTPInput {
	return &OTPInput{}
}

// TypeDigit writes a digit into a cell and advances focus to the next
// cell. Non-digit input and out-of-range cells are ignored.
func (o *OTPInput) TypeDigit(cell int, r rune) {
	if cell < 0 || cell >= CodeLength {
		return
	}
	if r < '0' || r > '9' {
		return
	}
	o.cells[cell] = string(r)
	if cell < CodeLength-1 {
		o.focus = cell + 1
	} else {
		o.focus = cell
	}
}

// Backspace clears a non-empty cell in place; on an already-empty cell it
// moves focus to the previous cell instead.
func (o *OTPInput) Backspace(cell int) {
	if cell < 0 || cell >= CodeLength {
		return
	}
	if o.cells[cell] != "" {
		o.cells[cell] = ""
		o.focus = cell
		return
	}
	if cell > 0 {
		o.focus = cell - 1
	}
}

// Paste fills all cells iff the pasted text is exactly six digits and
// focuses the last cell. Anything else is ignored entirely; there is no
// partial fill. Reports whether the paste was applied.
func (o *OTPInput) Paste(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	for i, r := range s {
		o.cells[i] = string(r)
	}
	o.focus = CodeLength - 1
	return true
}

// Complete reports whether every cell is filled.
func (o *OTPInput) Complete() bool {
	for _, c := range o.cells {
		if c == "" {
			return false
		}
	}
	return true
}

// Code returns the concatenated digits.
func (o *OTPInput) Code() string {
	return strings.Join(o.cells[:], "")
}

// Clear empties all cells and resets focus to the first cell.
func (o *OTPInput) Clear() {
	o.cells = [CodeLength]string{}
	o.focus = 0
}

func (o *OTPInput) Focus() int { return o.focus }

func (o *OTPInput) Cells() [CodeLength]string { return o.cells }
