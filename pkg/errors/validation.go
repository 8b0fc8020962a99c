package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxSequenceLength bounds a single input sequence. Two sequences at the
// limit give about 4 million cells. Each cell costs 9 bytes in the matrix
// and 16 more in the document's flat scores and backlinks, and the JSON
// encoding adds up to 10 bytes, so one alignment peaks near 140 MB.
const MaxSequenceLength = 2000

// ValidateSequence checks that a sequence is safe to align and display.
//
// The rules:
//   - Maximum length of MaxSequenceLength characters
//   - Only ASCII letters and '*' (stop codon)
//   - No '-', which marks gaps in alignments
//
// Empty sequences are valid.
func ValidateSequence(seq string) error {
	if len(seq) > MaxSequenceLength {
		return New(ErrCodeInvalidSequence, "sequence too long (%d characters, max %d)", len(seq), MaxSequenceLength)
	}

	for i, r := range seq {
		switch {
		case r == '-':
			return New(ErrCodeInvalidSequence, "sequence contains gap character at position %d", i+1)
		case r == '*':
		case r > unicode.MaxASCII || !unicode.IsLetter(r):
			return New(ErrCodeInvalidSequence, "sequence contains invalid character %q at position %d", r, i+1)
		}
	}

	return nil
}

// ValidateFormat checks that format is one of the supported output formats.
func ValidateFormat(format string, supported []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	if !slices.Contains(supported, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (supported: %s)", format, strings.Join(supported, ", "))
	}

	return nil
}

// ValidateMode checks an alignment mode name. The empty string selects the
// default mode and is accepted.
func ValidateMode(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "semi-global", "semiglobal", "global":
		return nil
	}
	return New(ErrCodeInvalidMode, "unknown alignment mode %q (want global or semi-global)", mode)
}
