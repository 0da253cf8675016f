package arival

import (
	"errors"
	"io"
	"math"
	"strconv"
)

// Expression = Prefix { Infix }
// Prefix = '(' Expression ')' | '-' Expression | Call | identifier | number
// Infix = ('+' | '-' | '*' | '/' | '^') Expression
// Call = funcname '(' [ Expression { ',' Expression } ] ')'

// operator is a binary operator.
type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// rhsprec is the precedence above which operators are folded into the right
// operand. Lowering it by one for right-associative operators lets an
// operator of equal precedence bind to the right: 2^2^3 is 2^(2^3).
func (op operator) rhsprec() int8 {
	if op.right {
		return op.prec - 1
	}
	return op.prec
}

const (
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec int8 = 0
	// unaryprec is the precedence of negation. It binds tighter than
	// multiplication and looser than exponentiation, so -2^2 is -(2^2).
	unaryprec int8 = 4
)

// binop gets the binary operator for a token kind. ok is false if the kind is
// not a binary operator.
func binop(k TokenKind) (op operator, ok bool) {
	switch k {
	case TokenPlus, TokenMinus:
		return operator{2, false}, true
	case TokenStar, TokenSlash:
		return operator{3, false}, true
	case TokenCaret:
		return operator{5, true}, true
	case TokenNone, TokenNumber, TokenIdentifier, TokenFunction, TokenLParen, TokenRParen, TokenComma:
		return operator{}, false
	default:
		panic("arival: unknown token kind " + k.String())
	}
}

// parser holds the state of a single evaluation. It evaluates as it parses,
// so each production returns the value of the text it consumed.
type parser struct {
	scan *Scanner
	// look is the lookahead token. It is meaningful only if have is true.
	look  Token
	have  bool
	vars  map[string]float64
	funcs *funcTable
}

// run parses and evaluates the entire input.
func (p *parser) run() (float64, error) {
	if err := p.advance(); err != nil {
		return 0, err
	}
	r, err := p.expression(exprprec)
	if err != nil {
		return 0, err
	}
	if p.have {
		return 0, &ParseError{Offset: p.look.Pos, Err: ErrTrailingInput, Text: p.scan.src[p.look.Pos:]}
	}
	return r, nil
}

// advance replaces the lookahead with the next token from the scanner.
func (p *parser) advance() error {
	tok, err := p.scan.Next()
	if err != nil {
		p.have = false
		if err == io.EOF {
			return nil
		}
		return err
	}
	p.look, p.have = tok, true
	return nil
}

// at reports whether the lookahead is a token of the given kind.
func (p *parser) at(kind TokenKind) bool {
	return p.have && p.look.Kind == kind
}

// consume requires the lookahead to be a token of the given kind, then
// advances past it.
func (p *parser) consume(kind TokenKind) (Token, error) {
	if !p.have {
		return Token{}, &ParseError{Offset: p.scan.Pos(), Err: ErrUnexpectedEOF, Want: kind}
	}
	tok := p.look
	if tok.Kind != kind {
		return Token{}, &ParseError{Offset: tok.Pos, Err: ErrUnexpectedToken, Want: kind, Got: tok}
	}
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// expression parses a prefix term, then folds in binary operations for as
// long as the lookahead operator binds more tightly than min.
func (p *parser) expression(min int8) (float64, error) {
	lhs, err := p.prefix()
	if err != nil {
		return 0, err
	}
	for p.have {
		op, ok := binop(p.look.Kind)
		if !ok || op.prec <= min {
			break
		}
		lhs, err = p.infix(lhs, op)
		if err != nil {
			return 0, err
		}
	}
	return lhs, nil
}

// prefix parses a term that begins a subexpression.
func (p *parser) prefix() (float64, error) {
	if p.have {
		switch p.look.Kind {
		case TokenLParen:
			return p.group()
		case TokenMinus:
			return p.negation()
		case TokenFunction:
			return p.call()
		case TokenIdentifier:
			return p.variable()
		}
	}
	// Anything else must be a number. If it isn't, consume reports the error.
	return p.number()
}

// infix applies the binary operator in the lookahead to lhs and the operand
// which follows it.
func (p *parser) infix(lhs float64, op operator) (float64, error) {
	tok, err := p.consume(p.look.Kind)
	if err != nil {
		return 0, err
	}
	rhs, err := p.expression(op.rhsprec())
	if err != nil {
		return 0, err
	}
	switch tok.Kind {
	case TokenPlus:
		return lhs + rhs, nil
	case TokenMinus:
		return lhs - rhs, nil
	case TokenStar:
		return lhs * rhs, nil
	case TokenSlash:
		return lhs / rhs, nil
	case TokenCaret:
		return math.Pow(lhs, rhs), nil
	default:
		panic("arival: infix on non-operator " + tok.String())
	}
}

func (p *parser) group() (float64, error) {
	if _, err := p.consume(TokenLParen); err != nil {
		return 0, err
	}
	r, err := p.expression(exprprec)
	if err != nil {
		return 0, err
	}
	if _, err := p.consume(TokenRParen); err != nil {
		return 0, err
	}
	return r, nil
}

func (p *parser) negation() (float64, error) {
	if _, err := p.consume(TokenMinus); err != nil {
		return 0, err
	}
	r, err := p.expression(unaryprec)
	if err != nil {
		return 0, err
	}
	return -r, nil
}

// call parses a function name and its bracketed argument list, then calls the
// function.
func (p *parser) call() (float64, error) {
	name, err := p.consume(TokenFunction)
	if err != nil {
		return 0, err
	}
	fn := p.funcs.lookup(name.Text)
	if fn == nil {
		// The scanner only classifies names from the same table.
		panic("arival: no function for " + name.String())
	}
	if _, err := p.consume(TokenLParen); err != nil {
		return 0, err
	}
	invoc := make([]float64, 0, fn.arity())
	if !p.at(TokenRParen) {
		for {
			x, err := p.expression(exprprec)
			if err != nil {
				return 0, err
			}
			invoc = append(invoc, x)
			if !p.at(TokenComma) {
				break
			}
			if _, err := p.consume(TokenComma); err != nil {
				return 0, err
			}
		}
	}
	if _, err := p.consume(TokenRParen); err != nil {
		return 0, err
	}
	if len(invoc) != fn.arity() {
		return 0, &ParseError{Offset: name.Pos, Err: ErrArity, Name: name.Text, Len: len(invoc)}
	}
	return fn.call(invoc), nil
}

func (p *parser) variable() (float64, error) {
	tok, err := p.consume(TokenIdentifier)
	if err != nil {
		return 0, err
	}
	v, ok := p.vars[tok.Text]
	if !ok {
		return 0, &ParseError{Offset: tok.Pos, Err: ErrUndefined, Name: tok.Text}
	}
	return v, nil
}

func (p *parser) number() (float64, error) {
	tok, err := p.consume(TokenNumber)
	if err != nil {
		return 0, err
	}
	r, err := strconv.ParseFloat(tok.Text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			// Too large for a float64. r is ±Inf.
			return r, nil
		}
		return 0, &ParseError{Offset: tok.Pos, Err: ErrBadNumber, Text: tok.Text}
	}
	return r, nil
}
