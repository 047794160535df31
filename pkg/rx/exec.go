package rx

import "bytes"

// contFunc is the backtracking continuation: "having matched everything up
// to pos, does the rest of the pattern also match?" Matching returns the
// final end position and whether the whole continuation chain succeeded,
// so STAR/PLUS/alternation can retry a different choice when a later part
// of the pattern rejects what an earlier, greedy part consumed.
//
// This is a continuation-passing formulation of the classic regmatch/
// regrepeat algorithm: "read ahead greedily, then peel back one at a
// time" becomes "try one more repetition greedily; if the continuation
// then fails, fall back to having matched one fewer" (matchRepeat
// below), the same greedy-then-backtrack behavior expressed recursively
// instead of via an explicit forward-scan-and-peel loop.
type contFunc func(pos int) (int, bool)

type matcher struct {
	s    []byte
	caps [numCaptures][2]int
}

// regtry zeroes the capture array, attempts the match from start, and
// on success records slot 0 as the whole match's [start, end).
func (re *Regexp) regtry(s []byte, start int) ([numCaptures][2]int, bool) {
	m := &matcher{s: s}
	for i := range m.caps {
		m.caps[i] = [2]int{-1, -1}
	}
	end, ok := m.match(re.root, start, func(pos int) (int, bool) { return pos, true })
	if !ok {
		return m.caps, false
	}
	m.caps[0] = [2]int{start, end}
	return m.caps, true
}

func (m *matcher) match(n *node, pos int, k contFunc) (int, bool) {
	switch n.kind {
	case nConcat:
		return m.matchSeq(n.sub, 0, pos, k)
	case nBranch:
		for _, b := range n.sub {
			if end, ok := m.match(b, pos, k); ok {
				return end, true
			}
		}
		return 0, false
	case nGroup:
		idx := n.groupIndex
		saved := m.caps[idx]
		end, ok := m.match(n.sub[0], pos, func(p2 int) (int, bool) {
			m.caps[idx] = [2]int{pos, p2}
			e, ok := k(p2)
			if !ok {
				m.caps[idx] = saved
			}
			return e, ok
		})
		return end, ok
	case nExactly:
		lit := n.literal
		if pos+len(lit) > len(m.s) || !bytes.Equal(m.s[pos:pos+len(lit)], lit) {
			return 0, false
		}
		return k(pos + len(lit))
	case nAny:
		if pos >= len(m.s) {
			return 0, false
		}
		return k(pos + 1)
	case nAnyOf:
		if pos >= len(m.s) || !containsByte(n.literal, m.s[pos]) {
			return 0, false
		}
		return k(pos + 1)
	case nAnyBut:
		if pos >= len(m.s) || containsByte(n.literal, m.s[pos]) {
			return 0, false
		}
		return k(pos + 1)
	case nBol:
		if pos != 0 {
			return 0, false
		}
		return k(pos)
	case nEol:
		if pos != len(m.s) {
			return 0, false
		}
		return k(pos)
	case nWordA:
		if pos >= len(m.s) || !isWordByte(m.s[pos]) {
			return 0, false
		}
		if pos > 0 && isWordByte(m.s[pos-1]) {
			return 0, false
		}
		return k(pos)
	case nWordZ:
		if pos == 0 || !isWordByte(m.s[pos-1]) {
			return 0, false
		}
		if pos < len(m.s) && isWordByte(m.s[pos]) {
			return 0, false
		}
		return k(pos)
	case nStar:
		return m.matchRepeat(n.sub[0], pos, 0, -1, k)
	case nPlus:
		return m.matchRepeat(n.sub[0], pos, 1, -1, k)
	case nQuest:
		return m.matchRepeat(n.sub[0], pos, 0, 1, k)
	default:
		return 0, false
	}
}

func (m *matcher) matchSeq(subs []*node, idx int, pos int, k contFunc) (int, bool) {
	if idx == len(subs) {
		return k(pos)
	}
	return m.match(subs[idx], pos, func(p2 int) (int, bool) {
		return m.matchSeq(subs, idx+1, p2, k)
	})
}

// matchRepeat matches sub greedily between min and max (max<0 meaning
// unbounded) times, retrying with fewer repetitions whenever the
// continuation rejects the greediest choice. STAR/PLUS/QUEST share this
// one implementation, parameterized only by their bounds.
func (m *matcher) matchRepeat(sub *node, pos int, min, max int, k contFunc) (int, bool) {
	var try func(pos, count int) (int, bool)
	try = func(pos, count int) (int, bool) {
		if max < 0 || count < max {
			if end, ok := m.match(sub, pos, func(p2 int) (int, bool) {
				if p2 == pos {
					// Empty-width repetition: one more "iteration" makes no
					// further progress, so stop growing and fall through to
					// the min-count check below rather than looping forever.
					if count+1 >= min {
						return k(p2)
					}
					return 0, false
				}
				return try(p2, count+1)
			}); ok {
				return end, true
			}
		}
		if count >= min {
			return k(pos)
		}
		return 0, false
	}
	return try(pos, 0)
}

func containsByte(set []byte, b byte) bool {
	for _, s := range set {
		if s == b {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
