// Copyright © 2026 The ELPS authors

// Package parser selects a lisp.Reader implementation.
package parser

import (
	"fmt"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser/rdparser"
	"github.com/haerfest/nextlisp/parser/regexparser"
)

// Reader names accepted by NewReaderNamed.
const (
	ReaderRD     = "rd"
	ReaderParsec = "parsec"
)

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return rdparser.NewReader()
}

// NewReaderNamed returns the lisp.Reader called name.  The empty name selects
// the default reader.
func NewReaderNamed(name string) (lisp.Reader, error) {
	switch name {
	case "", ReaderRD:
		return rdparser.NewReader(), nil
	case ReaderParsec:
		return regexparser.NewReader(), nil
	default:
		return nil, fmt.Errorf("unknown reader: %q", name)
	}
}
