package mdl

import (
	"strconv"

	"github.com/metercore/mcore/pkg/errs"
	"github.com/metercore/mcore/pkg/variant"
)

// Parse reads an MDL constant literal and returns the Variant it
// denotes.
func Parse(s string) (variant.Variant, error) {
	p := &parser{lex: newLexer(s)}
	if err := p.advance(); err != nil {
		return variant.Variant{}, err
	}
	v, err := p.parseValue()
	if err != nil {
		return variant.Variant{}, err
	}
	if p.tok.kind != tokEOF {
		return variant.Variant{}, errs.ValidationFailed("MDL: trailing input after value")
	}
	return v, nil
}

type parser struct {
	lex *lexer
	tok token
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseValue() (variant.Variant, error) {
	switch p.tok.kind {
	case tokString:
		v := variant.NewString(p.tok.text)
		return v, p.advance()
	case tokByteString:
		v := variant.NewByteString(variant.AcceptByteString, p.tok.bytes)
		return v, p.advance()
	case tokNumber:
		return p.parseNumber()
	case tokIdent:
		return p.parseKeyword()
	case tokLBrace:
		return p.parseBraced()
	case tokLBracket:
		return p.parseBracketed()
	default:
		return variant.Variant{}, errs.ValidationFailed("MDL: unexpected token where a value was expected")
	}
}

func (p *parser) parseKeyword() (variant.Variant, error) {
	switch p.tok.text {
	case "TRUE":
		return variant.NewBool(true), p.advance()
	case "FALSE":
		return variant.NewBool(false), p.advance()
	case "EMPTY":
		return variant.NewEmpty(), p.advance()
	default:
		return variant.Variant{}, errs.ValidationFailed("MDL: unknown keyword %s", errs.Quote(p.tok.text))
	}
}

func (p *parser) parseNumber() (variant.Variant, error) {
	text, unsigned, isFloat := p.tok.text, p.tok.unsigned, p.tok.float
	if err := p.advance(); err != nil {
		return variant.Variant{}, err
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return variant.Variant{}, errs.BadConversion("MDL: bad Double literal %s: %v", errs.Quote(text), err)
		}
		return variant.NewDouble(f), nil
	}
	if unsigned {
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return variant.Variant{}, errs.BadConversion("MDL: bad unsigned literal %s: %v", errs.Quote(text), err)
		}
		return variant.NewUInt64(n), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return variant.Variant{}, errs.BadConversion("MDL: bad integer literal %s: %v", errs.Quote(text), err)
	}
	return variant.NewInt64(n), nil
}

// parseBraced parses a `{...}` form: the degenerate empty map `{:}`, a
// map `{k:v,...}` (colon follows the first element), or otherwise a
// collection `{a,b,...}`.
func (p *parser) parseBraced() (variant.Variant, error) {
	if err := p.advance(); err != nil { // consume '{'
		return variant.Variant{}, err
	}
	if p.tok.kind == tokColon {
		if err := p.advance(); err != nil {
			return variant.Variant{}, err
		}
		if p.tok.kind != tokRBrace {
			return variant.Variant{}, errs.ValidationFailed("MDL: expected '}' after degenerate map colon")
		}
		return variant.NewMap(), p.advance()
	}
	if p.tok.kind == tokRBrace {
		return variant.NewVariantCollection(nil), p.advance()
	}
	first, err := p.parseValue()
	if err != nil {
		return variant.Variant{}, err
	}
	if p.tok.kind == tokColon {
		return p.parseMapBody(first)
	}
	return p.parseCollectionBody(first, tokRBrace)
}

func (p *parser) parseMapBody(firstKey variant.Variant) (variant.Variant, error) {
	m := variant.NewMap()
	key := firstKey
	for {
		if err := p.advance(); err != nil { // consume ':'
			return variant.Variant{}, err
		}
		val, err := p.parseValue()
		if err != nil {
			return variant.Variant{}, err
		}
		if err := m.SetItem(key, val); err != nil {
			return variant.Variant{}, err
		}
		switch p.tok.kind {
		case tokRBrace:
			return m, p.advance()
		case tokComma:
			if err := p.advance(); err != nil {
				return variant.Variant{}, err
			}
			key, err = p.parseValue()
			if err != nil {
				return variant.Variant{}, err
			}
			if p.tok.kind != tokColon {
				return variant.Variant{}, errs.ValidationFailed("MDL: expected ':' in map entry")
			}
		default:
			return variant.Variant{}, errs.ValidationFailed("MDL: expected ',' or '}' in map")
		}
	}
}

func (p *parser) parseCollectionBody(first variant.Variant, closing tokenKind) (variant.Variant, error) {
	items := []variant.Variant{first}
	for {
		switch p.tok.kind {
		case closing:
			return variant.NewVariantCollection(items), p.advance()
		case tokComma:
			if err := p.advance(); err != nil {
				return variant.Variant{}, err
			}
			v, err := p.parseValue()
			if err != nil {
				return variant.Variant{}, err
			}
			items = append(items, v)
		default:
			return variant.Variant{}, errs.ValidationFailed("MDL: expected ',' or closing bracket in collection")
		}
	}
}

func (p *parser) parseBracketed() (variant.Variant, error) {
	if err := p.advance(); err != nil { // consume '['
		return variant.Variant{}, err
	}
	if p.tok.kind == tokRBracket {
		return variant.NewVariantCollection(nil), p.advance()
	}
	first, err := p.parseValue()
	if err != nil {
		return variant.Variant{}, err
	}
	return p.parseCollectionBody(first, tokRBracket)
}
