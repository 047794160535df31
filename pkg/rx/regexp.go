package rx

// FindSubmatchIndex scans successive start positions (or only position
// 0 if the pattern is anchored) and returns the first position at which
// regtry succeeds, as a flattened [start0, end0, start1, end1, ...,
// start9, end9] slice (unset groups are [-1, -1]), or nil if the pattern
// matches nowhere in s.
func (re *Regexp) FindSubmatchIndex(s []byte) []int {
	if re.anchored {
		if caps, ok := re.regtry(s, 0); ok {
			return capsToSlice(caps)
		}
		return nil
	}
	for start := 0; start <= len(s); start++ {
		if caps, ok := re.regtry(s, start); ok {
			return capsToSlice(caps)
		}
	}
	return nil
}

// Match reports whether the pattern matches anywhere in s, recording the
// capture slots for the item accessors and GetReplaceString.
func (re *Regexp) Match(s []byte) bool {
	idx := re.FindSubmatchIndex(s)
	if idx == nil {
		re.matched = false
		return false
	}
	re.matched = true
	re.lastInput = s
	for i := 0; i < numCaptures; i++ {
		re.lastCaps[i] = [2]int{idx[2*i], idx[2*i+1]}
	}
	return true
}

// MatchString is the string convenience form of Match.
func (re *Regexp) MatchString(s string) bool { return re.Match([]byte(s)) }

// FindStringSubmatch returns the whole match and each of the 9 capture
// groups as strings (empty string for an unset group), or nil if the
// pattern does not match s.
func (re *Regexp) FindStringSubmatch(s string) []string {
	idx := re.FindSubmatchIndex([]byte(s))
	if idx == nil {
		return nil
	}
	out := make([]string, numCaptures)
	for i := 0; i < numCaptures; i++ {
		lo, hi := idx[2*i], idx[2*i+1]
		if lo < 0 || hi < 0 {
			out[i] = ""
			continue
		}
		out[i] = s[lo:hi]
	}
	return out
}

func capsToSlice(caps [numCaptures][2]int) []int {
	out := make([]int, 2*numCaptures)
	for i, c := range caps {
		out[2*i] = c[0]
		out[2*i+1] = c[1]
	}
	return out
}
