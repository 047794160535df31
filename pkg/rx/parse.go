package rx

import (
	"github.com/metercore/mcore/pkg/errs"
)

// nodeKind is the AST-level node kind produced by the parser, distinct
// from the flat program's opcode byte (see program.go): a single AST node
// may expand to several program nodes (e.g. a STAR wraps its operand in a
// BACK/BRANCH pair).
type nodeKind int

const (
	nBranch nodeKind = iota // alternation: Sub are the '|'-separated branches
	nConcat                 // concatenation: Sub are run in sequence
	nStar                   // greedy zero-or-more over Sub[0]
	nPlus                   // greedy one-or-more over Sub[0]
	nQuest                  // zero-or-one over Sub[0] (compiled via BRANCH trick)
	nGroup                  // capturing group; GroupIndex in 1..9
	nExactly                // a literal run of bytes (Literal)
	nAny                    // '.'
	nAnyOf                  // '[...]' positive class (Literal holds the member bytes)
	nAnyBut                 // '[^...]' negative class
	nBol                    // '^'
	nEol                    // '$'
	nWordA                  // '\<' start-of-word anchor
	nWordZ                  // '\>' end-of-word anchor
)

type node struct {
	kind       nodeKind
	sub        []*node
	literal    []byte
	groupIndex int
}

// parser is a recursive-descent parser over the (optionally
// case-folded, see Compile) pattern text.
type parser struct {
	src        []byte
	pos        int
	groupCount int
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) next() (byte, bool) {
	c, ok := p.peek()
	if ok {
		p.pos++
	}
	return c, ok
}

// parseAlternation parses expr ::= concat ('|' concat)*.
func (p *parser) parseAlternation() (*node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	branches := []*node{first}
	for {
		c, ok := p.peek()
		if !ok || c != '|' {
			break
		}
		p.pos++
		n, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, n)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &node{kind: nBranch, sub: branches}, nil
}

// parseConcat parses concat ::= piece*, stopping at '|' or ')'.
func (p *parser) parseConcat() (*node, error) {
	var pieces []*node
	for {
		c, ok := p.peek()
		if !ok || c == '|' || c == ')' {
			break
		}
		piece, err := p.parsePiece()
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}
	if len(pieces) == 0 {
		return &node{kind: nExactly, literal: nil}, nil
	}
	if len(pieces) == 1 {
		return pieces[0], nil
	}
	return &node{kind: nConcat, sub: pieces}, nil
}

// parsePiece parses piece ::= atom quantifier?.
func (p *parser) parsePiece() (*node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	c, ok := p.peek()
	if !ok {
		return atom, nil
	}
	var out *node
	switch c {
	case '*':
		p.pos++
		if isEmptyMatchable(atom) {
			return nil, errs.RegexpEmptyMatchUnderRepeat()
		}
		if err := rejectNestedQuantifier(atom); err != nil {
			return nil, err
		}
		out = &node{kind: nStar, sub: []*node{atom}}
	case '+':
		p.pos++
		if isEmptyMatchable(atom) {
			return nil, errs.RegexpEmptyMatchUnderRepeat()
		}
		if err := rejectNestedQuantifier(atom); err != nil {
			return nil, err
		}
		out = &node{kind: nPlus, sub: []*node{atom}}
	case '?':
		p.pos++
		if err := rejectNestedQuantifier(atom); err != nil {
			return nil, err
		}
		out = &node{kind: nQuest, sub: []*node{atom}}
	default:
		return atom, nil
	}
	// a quantifier applied directly to a quantified piece, as in "a**"
	if cc, ok := p.peek(); ok && (cc == '*' || cc == '+' || cc == '?') {
		return nil, errs.RegexpNestedQuantifier()
	}
	return out, nil
}

func rejectNestedQuantifier(atom *node) error {
	switch atom.kind {
	case nStar, nPlus, nQuest:
		return errs.RegexpNestedQuantifier()
	}
	return nil
}

// isEmptyMatchable reports whether n can match the empty string, which
// makes it illegal as a '*'/'+' operand (the repeat would never have to
// advance).
func isEmptyMatchable(n *node) bool {
	switch n.kind {
	case nExactly:
		return len(n.literal) == 0
	case nBol, nEol, nWordA, nWordZ:
		return true
	case nStar, nQuest:
		return true
	case nGroup, nPlus:
		return isEmptyMatchable(n.sub[0])
	case nConcat:
		for _, s := range n.sub {
			if !isEmptyMatchable(s) {
				return false
			}
		}
		return true
	case nBranch:
		for _, s := range n.sub {
			if isEmptyMatchable(s) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// parseAtom parses a single atom: group, class, anchor, or literal/escape.
func (p *parser) parseAtom() (*node, error) {
	c, ok := p.next()
	if !ok {
		return nil, errs.RegexpQuantifierNoOperand()
	}
	switch c {
	case '(':
		p.groupCount++
		if p.groupCount > 9 {
			return nil, errs.RegexpTooManyParens()
		}
		idx := p.groupCount
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		cc, ok := p.next()
		if !ok || cc != ')' {
			return nil, errs.RegexpUnterminatedParen()
		}
		return &node{kind: nGroup, sub: []*node{inner}, groupIndex: idx}, nil
	case ')':
		return nil, errs.RegexpUnmatchedParen()
	case '.':
		return &node{kind: nAny}, nil
	case '^':
		return &node{kind: nBol}, nil
	case '$':
		return &node{kind: nEol}, nil
	case '[':
		return p.parseClass()
	case '*', '+', '?':
		return nil, errs.RegexpQuantifierNoOperand()
	case '\\':
		e, ok := p.next()
		if !ok {
			return nil, errs.RegexpTrailingBackslash()
		}
		switch e {
		case '<':
			return &node{kind: nWordA}, nil
		case '>':
			return &node{kind: nWordZ}, nil
		case 'n':
			return &node{kind: nExactly, literal: []byte{'\n'}}, nil
		case 't':
			return &node{kind: nExactly, literal: []byte{'\t'}}, nil
		default:
			return &node{kind: nExactly, literal: []byte{e}}, nil
		}
	default:
		return &node{kind: nExactly, literal: []byte{c}}, nil
	}
}

// parseClass parses a POSIX bracket expression, already past the opening
// '['. Supports a leading '^' for negation and 'a-z'-style ranges.
func (p *parser) parseClass() (*node, error) {
	neg := false
	if c, ok := p.peek(); ok && c == '^' {
		neg = true
		p.pos++
	}
	var set [256]bool
	first := true
	for {
		c, ok := p.next()
		if !ok {
			return nil, errs.RegexpEmptyBrackets()
		}
		if c == ']' && !first {
			break
		}
		first = false
		lo := c
		if nc, ok := p.peek(); ok && nc == '-' {
			// Lookahead for a range, unless '-' is immediately before ']'.
			save := p.pos
			p.pos++
			if hc, ok2 := p.peek(); ok2 && hc != ']' {
				p.pos++
				hi := hc
				if hi < lo {
					return nil, errs.RegexpBadRange()
				}
				for b := int(lo); b <= int(hi); b++ {
					set[b] = true
				}
				continue
			}
			p.pos = save
		}
		set[lo] = true
	}
	members := make([]byte, 0, 32)
	for b := 0; b < 256; b++ {
		if set[b] {
			members = append(members, byte(b))
		}
	}
	if len(members) == 0 {
		return nil, errs.RegexpEmptyBrackets()
	}
	kind := nAnyOf
	if neg {
		kind = nAnyBut
	}
	return &node{kind: kind, literal: members}, nil
}

// parse runs the full parser over src and reports unmatched '(' as
// RegexpUnterminatedParen (the top-level alternation consumes everything
// up to an unexpected ')' or end of input).
func parse(src []byte) (*node, error) {
	p := &parser{src: src}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.src) {
		// Only way to stop early is an unmatched ')'.
		return nil, errs.RegexpUnmatchedParen()
	}
	return root, nil
}
