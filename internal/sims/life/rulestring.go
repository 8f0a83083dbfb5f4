package life

import (
	"fmt"
	"strings"

	"par-ca/internal/core"
)

var (
	// ErrRuleFormat reports a rule string that does not follow B<digits>S<digits>.
	ErrRuleFormat = fmt.Errorf("%w: malformed rule string", core.ErrConfig)
	// ErrRuleDigit reports a neighbor count outside 0..8.
	ErrRuleDigit = fmt.Errorf("%w: neighbor count out of range 0-8", core.ErrConfig)
)

// RuleError describes where and why a rule string failed to parse.
type RuleError struct {
	Rule   string
	Pos    int
	Reason string
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: position %d: %s", e.Rule, e.Pos, e.Reason)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Masks holds the birth and survival conditions of a life-like rule. Bit n
// is set when n alive neighbors trigger the effect.
type Masks struct {
	Birth   uint16
	Survive uint16
}

// ParseRule parses rule text such as "B3S23" or "B36S23".
func ParseRule(text string) (Masks, error) {
	fail := func(pos int, err error, reason string) (Masks, error) {
		return Masks{}, &RuleError{Rule: text, Pos: pos, Reason: reason, Err: err}
	}
	if !strings.HasPrefix(text, "B") {
		return fail(0, ErrRuleFormat, "must start with 'B'")
	}

	var m Masks
	target := &m.Birth
	seenS := false
	for i := 1; i < len(text); i++ {
		c := text[i]
		switch {
		case c == 'S':
			if seenS {
				return fail(i, ErrRuleFormat, "more than one 'S'")
			}
			seenS = true
			target = &m.Survive
		case c >= '0' && c <= '8':
			*target |= 1 << (c - '0')
		case c == '9':
			return fail(i, ErrRuleDigit, "digit 9 exceeds the 8 possible neighbors")
		default:
			return fail(i, ErrRuleFormat, fmt.Sprintf("unexpected character %q", c))
		}
	}
	if !seenS {
		return fail(len(text), ErrRuleFormat, "missing 'S'")
	}
	return m, nil
}

// String renders the masks back into canonical B/S notation.
func (m Masks) String() string {
	var b strings.Builder
	b.WriteByte('B')
	writeDigits(&b, m.Birth)
	b.WriteByte('S')
	writeDigits(&b, m.Survive)
	return b.String()
}

func writeDigits(b *strings.Builder, mask uint16) {
	for n := 0; n <= 8; n++ {
		if mask&(1<<n) != 0 {
			b.WriteByte(byte('0' + n))
		}
	}
}
