package rx

import "github.com/metercore/mcore/pkg/errs"

// Opcode names the node kinds a compiled program is built from. The
// compiled representation here is a validated AST rather than a literal
// flat byte buffer: Go has no need for fixed-size node packing, and the
// AST preserves every opcode, the capture numbering, and the
// backtracking algorithm.
type Opcode byte

const (
	OpEnd Opcode = iota
	OpBol
	OpEol
	OpAny
	OpAnyOf
	OpAnyBut
	OpBranch
	OpBack
	OpExactly
	OpNothing
	OpStar
	OpPlus
	OpWordA
	OpWordZ
	OpOpen  // OpOpen+n, n=1..9
	OpClose // OpClose+n, n=1..9
)

// maxProgramBytes is the compile-time program size limit, applied
// against an estimate of what the equivalent flat 5-byte-node encoding
// would cost, so a pathological pattern still fails compilation.
const maxProgramBytes = 32 * 1024

const numCaptures = 10 // slot 0 = whole match, 1..9 = groups.

// Regexp is a compiled pattern. A Regexp also carries the capture slots
// of its most recent successful Match, serving the item accessors and
// GetReplaceString; like every other value in this SDK it is single-owner
// for mutation.
type Regexp struct {
	root      *node
	anchored  bool
	ncaptures int

	matched   bool
	lastInput []byte
	lastCaps  [numCaptures][2]int
}

// Compile parses and validates pattern, rewriting it for case-insensitive
// matching at compile time if requested.
func Compile(pattern string, caseInsensitive bool) (*Regexp, error) {
	src := []byte(pattern)
	if caseInsensitive {
		src = foldCase(src)
	}
	root, err := parse(src)
	if err != nil {
		return nil, err
	}
	if estimateSize(root) > maxProgramBytes {
		return nil, errs.RegexpProgramTooLarge()
	}
	return &Regexp{root: root, anchored: isAnchored(root), ncaptures: numCaptures}, nil
}

// MustCompile is Compile, panicking on error, for static patterns.
func MustCompile(pattern string, caseInsensitive bool) *Regexp {
	re, err := Compile(pattern, caseInsensitive)
	if err != nil {
		panic(err)
	}
	return re
}

// foldCase rewrites each bare ASCII letter outside a bracket expression
// (and not already escaped) into a two-letter class "[Cc]", leaving
// existing bracket expressions, escapes, and metacharacters untouched.
func foldCase(src []byte) []byte {
	out := make([]byte, 0, len(src)+8)
	inClass := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			out = append(out, c, src[i+1])
			i++
		case c == '[':
			inClass = true
			out = append(out, c)
		case c == ']':
			inClass = false
			out = append(out, c)
		case !inClass && isASCIILetter(c):
			lo, hi := toLower(c), toUpper(c)
			if lo == hi {
				out = append(out, c)
			} else {
				out = append(out, '[', hi, lo, ']')
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

func isASCIILetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 32
	}
	return c
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 32
	}
	return c
}

// estimateSize walks the AST summing the byte cost the equivalent flat
// program would have: a 5-byte header per node plus its operand.
func estimateSize(n *node) int {
	if n == nil {
		return 0
	}
	total := 5 + len(n.literal)
	switch n.kind {
	case nBranch:
		for _, s := range n.sub {
			total += 5 // extra BRANCH header per additional alternative
			total += estimateSize(s)
		}
	case nGroup:
		total += 5 // matching CLOSE node
		total += estimateSize(n.sub[0])
	case nStar, nPlus, nQuest:
		total += 5 // BACK/extra BRANCH node
		total += estimateSize(n.sub[0])
	case nConcat:
		total = 0
		for _, s := range n.sub {
			total += estimateSize(s)
		}
	}
	return total
}

// isAnchored decides at compile time whether matching may skip the
// position scan: true only if every top-level alternative begins with
// '^'.
func isAnchored(n *node) bool {
	branches := []*node{n}
	if n.kind == nBranch {
		branches = n.sub
	}
	for _, b := range branches {
		if !startsWithBol(b) {
			return false
		}
	}
	return true
}

func startsWithBol(n *node) bool {
	switch n.kind {
	case nBol:
		return true
	case nConcat:
		if len(n.sub) == 0 {
			return false
		}
		return startsWithBol(n.sub[0])
	case nGroup:
		return startsWithBol(n.sub[0])
	default:
		return false
	}
}
