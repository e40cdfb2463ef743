package ctc

// Charset maps between symbol indices and characters. Index 0 is always
// the blank symbol, which decodes to the empty string; indices from 1
// map onto the character table in order.
type Charset struct {
	chars []rune
}

// NewCharset builds a charset from the given characters, prepending the
// blank symbol at index 0.
func NewCharset(chars string) *Charset {
	return &Charset{chars: append([]rune{0}, []rune(chars)...)}
}

// ASCII returns the default charset covering printable ASCII (codes 32
// through 126) after the blank.
func ASCII() *Charset {
	chars := make([]rune, 0, 95)
	for c := rune(32); c < 127; c++ {
		chars = append(chars, c)
	}
	return &Charset{chars: append([]rune{0}, chars...)}
}

// Len returns the number of symbols, including the blank.
func (c *Charset) Len() int { return len(c.chars) }

// Decode converts a sequence of symbol indices to a string. The blank
// symbol contributes nothing.
func (c *Charset) Decode(indices []int) string {
	out := make([]rune, 0, len(indices))
	for _, k := range indices {
		if k <= 0 || k >= len(c.chars) {
			continue
		}
		out = append(out, c.chars[k])
	}
	return string(out)
}

// Encode converts a string to symbol indices. Characters outside the
// table map to the last index; the blank index is never produced.
func (c *Charset) Encode(s string) []int {
	out := make([]int, 0, len(s))
	for _, r := range s {
		idx := len(c.chars) - 1
		for i := 1; i < len(c.chars); i++ {
			if c.chars[i] == r {
				idx = i
				break
			}
		}
		out = append(out, idx)
	}
	return out
}
