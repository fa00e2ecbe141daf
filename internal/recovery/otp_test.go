package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOTPTypeDigitAdvancesFocus(t *testing.T) {
	otp := NewOTPInput()

	otp.TypeDigit(0, '4')
	assert.Equal(t, "4", otp.Cells()[0])
	assert.Equal(t, 1, otp.Focus())

	otp.TypeDigit(1, '2')
	assert.Equal(t, 2, otp.Focus())
}

func TestOTPTypeDigitLastCellKeepsFocus(t *testing.T) {
	otp := NewOTPInput()
	otp.TypeDigit(5, '9')
	assert.Equal(t, "9", otp.Cells()[5])
	assert.Equal(t, 5, otp.Focus())
}

func TestOTPTypeDigitIgnoresNonDigits(t *testing.T) {
	otp := NewOTPInput()
	otp.TypeDigit(0, 'a')
	assert.Equal(t, "", otp.Cells()[0])
	assert.Equal(t, 0, otp.Focus())

	otp.TypeDigit(-1, '3')
	otp.TypeDigit(6, '3')
	assert.Equal(t, [CodeLength]string{}, otp.Cells())
}

func TestOTPBackspaceClearsInPlace(t *testing.T) {
	otp := NewOTPInput()
	otp.TypeDigit(0, '1')
	otp.TypeDigit(1, '2')

	otp.Backspace(1)
	assert.Equal(t, "", otp.Cells()[1])
	assert.Equal(t, 1, otp.Focus())
}

func TestOTPBackspaceOnEmptyCellMovesFocusBack(t *testing.T) {
	otp := NewOTPInput()
	otp.TypeDigit(0, '1')

	otp.Backspace(1)
	assert.Equal(t, "1", otp.Cells()[0])
	assert.Equal(t, 0, otp.Focus())

	// first cell, nowhere left to go
	otp.Backspace(0)
	otp.Backspace(0)
	assert.Equal(t, 0, otp.Focus())
}

func TestOTPPasteExactSixDigits(t *testing.T) {
	otp := NewOTPInput()

	assert.True(t, otp.Paste("123456"))
	assert.Equal(t, "123456", otp.Code())
	assert.Equal(t, CodeLength-1, otp.Focus())
	assert.True(t, otp.Complete())
}

func TestOTPPasteRejectsEverythingElse(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"too short", "12345"},
		{"too long", "1234567"},
		{"letters", "12a456"},
		{"spaces", "123 56"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			otp := NewOTPInput()
			otp.TypeDigit(0, '7')

			assert.False(t, otp.Paste(tc.input))
			// no partial fill: prior state is untouched
			assert.Equal(t, "7", otp.Cells()[0])
			assert.Equal(t, "", otp.Cells()[1])
		})
	}
}

func TestOTPClearResetsCellsAndFocus(t *testing.T) {
	otp := NewOTPInput()
	otp.Paste("987654")

	otp.Clear()
	assert.Equal(t, [CodeLength]string{}, otp.Cells())
	assert.Equal(t, 0, otp.Focus())
	assert.False(t, otp.Complete())
	assert.Equal(t, "", otp.Code())
}
