// Copyright © 2026 The ELPS authors

package lisp

// Error condition names.  These are stable API for programmatic error
// classification by embedding applications.
const (
	// Lexical and syntactic conditions.
	CondUnterminatedString     = "unterminated-string"
	CondUnexpectedDot          = "unexpected-dot"
	CondUnexpectedCloseBracket = "unexpected-close-bracket"
	CondIncompleteExpression   = "incomplete-expression"
	CondParseError             = "parse-error"

	// Evaluation conditions.
	CondUnboundSymbol = "unbound-symbol"
	CondNotApplicable = "not-applicable"
	CondArityMismatch = "arity-mismatch"
	CondNotANumber    = "not-a-number"
	CondWrongType     = "wrong-type"
	CondInvalidForm   = "invalid-form"

	// Resource conditions.
	CondStackExhausted = "stack-exhausted"

	// Host conditions.
	CondIOError = "io-error"
)
