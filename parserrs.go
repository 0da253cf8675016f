package arival

import (
	"errors"
	"strconv"
)

// Causes of parse errors. A *ParseError unwraps to exactly one of these.
var (
	// ErrUnexpectedEOF means the input ended where a token was required.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrUnexpectedToken means a token was not of the kind the grammar
	// requires at its position.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrUndefined means an identifier has no binding.
	ErrUndefined = errors.New("undefined variable")
	// ErrArity means a function was called with the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrTrailingInput means input remained after a complete expression.
	ErrTrailingInput = errors.New("trailing input")
	// ErrBadNumber means a number token could not be converted to a float.
	ErrBadNumber = errors.New("invalid number")
)

// ParseError is an error from input which scans correctly but does not form
// a valid expression. It implements InputError.
type ParseError struct {
	// Offset is the byte offset of the token which caused the error, or the
	// length of the input if the input ended early.
	Offset int
	// Err is the cause of the error, one of the Err variables in this package.
	Err error
	// Want is the kind of token that was required, for ErrUnexpectedEOF and
	// ErrUnexpectedToken.
	Want TokenKind
	// Got is the token that was found, for ErrUnexpectedToken.
	Got Token
	// Name is the undefined variable or the function name, for ErrUndefined
	// and ErrArity.
	Name string
	// Len is the number of arguments received, for ErrArity.
	Len int
	// Text is the leftover input for ErrTrailingInput or the number text for
	// ErrBadNumber.
	Text string
}

func (err *ParseError) Error() string {
	var msg string
	switch err.Err {
	case ErrUnexpectedEOF:
		msg = "unexpected end of input, expected " + err.Want.String()
	case ErrUnexpectedToken:
		msg = "unexpected token " + err.Got.Kind.String() + " " + strconv.Quote(err.Got.Text) + ", expected " + err.Want.String()
	case ErrUndefined:
		msg = "undefined variable " + strconv.Quote(err.Name)
	case ErrArity:
		msg = "cannot call " + err.Name + " with " + strconv.Itoa(err.Len) + " arguments"
	case ErrTrailingInput:
		msg = "cannot process entire expression, leftover " + strconv.Quote(err.Text)
	case ErrBadNumber:
		msg = "cannot convert " + strconv.Quote(err.Text) + " to a number"
	default:
		msg = "parse error"
		if err.Err != nil {
			msg = err.Err.Error()
		}
	}
	return errpos(err.Offset, msg)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func (err *ParseError) Pos() int {
	return err.Offset
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the input at which the error occurred.
	Pos() int
}

var (
	_ InputError = (*ParseError)(nil)
	_ InputError = (*LexError)(nil)
)
