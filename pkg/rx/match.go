package rx

// Accessors over the capture slots recorded by the most recent successful
// Match. Slot 0 is the whole match, slots 1..9 the parenthesized groups.

// GetCount returns the index of the highest-numbered parenthesized group
// that participated in the last match, 0 when the pattern has no groups,
// no group participated, or nothing matched.
func (re *Regexp) GetCount() int {
	if !re.matched {
		return 0
	}
	count := 0
	for i := 1; i < numCaptures; i++ {
		if re.lastCaps[i][0] >= 0 {
			count = i
		}
	}
	return count
}

// GetItemStart returns the byte offset where capture slot i begins, -1
// for a slot that did not participate in the last match.
func (re *Regexp) GetItemStart(i int) int {
	if !re.matched || i < 0 || i >= numCaptures {
		return -1
	}
	return re.lastCaps[i][0]
}

// GetItemLength returns the length of capture slot i in bytes, 0 for a
// slot that did not participate in the last match.
func (re *Regexp) GetItemLength(i int) int {
	if !re.matched || i < 0 || i >= numCaptures {
		return 0
	}
	lo, hi := re.lastCaps[i][0], re.lastCaps[i][1]
	if lo < 0 || hi < lo {
		return 0
	}
	return hi - lo
}

// Item returns the text of capture slot i, empty for a slot that did not
// participate in the last match.
func (re *Regexp) Item(i int) string {
	if !re.matched || i < 0 || i >= numCaptures {
		return ""
	}
	lo, hi := re.lastCaps[i][0], re.lastCaps[i][1]
	if lo < 0 || hi < lo {
		return ""
	}
	return string(re.lastInput[lo:hi])
}

// GetReplaceString expands template against the last match: '&' inserts
// slot 0, "\0".."\9" insert that slot, "\&" and "\\" are literals, and a
// reference to a slot that did not participate expands to nothing.
func (re *Regexp) GetReplaceString(template string) string {
	out := make([]byte, 0, len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '&':
			out = append(out, re.Item(0)...)
		case c == '\\' && i+1 < len(template):
			i++
			n := template[i]
			switch {
			case n >= '0' && n <= '9':
				out = append(out, re.Item(int(n-'0'))...)
			default:
				out = append(out, n)
			}
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
