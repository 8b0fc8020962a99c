package align

import (
	"fmt"
	"strings"
)

// Mode selects how gaps at the ends of the sequences are scored.
type Mode int

const (
	// SemiGlobal charges [Scoring.TerminalGap] for gaps along the matrix
	// edges, so overhangs can be free.
	SemiGlobal Mode = iota
	// Global charges [Scoring.Gap] for every gap.
	Global
)

// String returns "semi-global" or "global".
func (m Mode) String() string {
	switch m {
	case SemiGlobal:
		return "semi-global"
	case Global:
		return "global"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name. The empty string selects [SemiGlobal].
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "semi-global", "semiglobal":
		return SemiGlobal, nil
	case "global":
		return Global, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText encodes the mode by name for JSON and TOML.
func (m Mode) MarshalText() ([]byte, error) {
	if m != SemiGlobal && m != Global {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Default scores.
const (
	DefaultMatch       = 1
	DefaultMismatch    = 0
	DefaultGap         = -1
	DefaultTerminalGap = 0
)

// Scoring is the flat scoring policy used by [Fill].
type Scoring struct {
	Match       int  `json:"match" toml:"match"`
	Mismatch    int  `json:"mismatch" toml:"mismatch"`
	Gap         int  `json:"gap" toml:"gap"`
	TerminalGap int  `json:"terminal_gap" toml:"terminal_gap"`
	Mode        Mode `json:"mode" toml:"mode"`
}

// DefaultScoring returns semi-global scoring with match 1, mismatch 0,
// gap -1 and free terminal gaps.
func DefaultScoring() Scoring {
	return Scoring{
		Match:       DefaultMatch,
		Mismatch:    DefaultMismatch,
		Gap:         DefaultGap,
		TerminalGap: DefaultTerminalGap,
		Mode:        SemiGlobal,
	}
}

// Validate checks the mode.
func (s Scoring) Validate() error {
	if s.Mode != SemiGlobal && s.Mode != Global {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(s.Mode))
	}
	return nil
}

func (s Scoring) substitution(match bool) int {
	if match {
		return s.Match
	}
	return s.Mismatch
}

// edgeGap is the cost of each step along row 0 and column 0.
func (s Scoring) edgeGap() int {
	if s.Mode == Global {
		return s.Gap
	}
	return s.TerminalGap
}

// leftGap is the cost of a left move into row i. Only the last row is a
// terminal edge here: row 0 never reaches the interior fill.
func (s Scoring) leftGap(rows, i int) int {
	if s.Mode == SemiGlobal && i == rows-1 {
		return s.TerminalGap
	}
	return s.Gap
}

// upGap is the cost of an up move into column j. Only the last column is a
// terminal edge here.
func (s Scoring) upGap(cols, j int) int {
	if s.Mode == SemiGlobal && j == cols-1 {
		return s.TerminalGap
	}
	return s.Gap
}
