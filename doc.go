// Package arival evaluates arithmetic expressions on float64 values.
//
// Expressions use + - * / and ^, where ^ is exponentiation and associates to
// the right: "2^2^3" is 2^(2^3) = 256. A leading - negates, binding tighter
// than * and / but looser than ^, so "-2^2" is -4. Parentheses group.
// Identifiers are variables bound with SetVar or SetVars. The functions sin,
// cos, tan and sqrt take one argument; log(x, base), pow, max and min take
// two. A function name is never a variable.
//
// There is no syntax tree. The parser is a Pratt parser which computes the
// value of each subexpression as soon as it has parsed it. Recursion depth is
// proportional to the nesting depth of the expression, so the size of the
// input bounds the stack that an evaluation uses.
//
// Arithmetic follows IEEE-754: "1/0" is +Inf and "sqrt(-1)" is NaN, neither of
// which is an error.
package arival
