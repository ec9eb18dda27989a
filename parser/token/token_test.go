// Copyright © 2026 The ELPS authors

package token

import "testing"

func TestTypeString(t *testing.T) {
	used := make(map[string]bool)
	for tok := Type(0); tok < numTokenTypes; tok++ {
		str := tok.String()
		if str == "" {
			t.Errorf("token type %x has empty string value", tok)
			continue
		}
		if used[str] {
			t.Errorf("token type string used twice: %v", tok)
		}
		used[str] = true
	}
}

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{File: "stdin", Pos: -1}, "stdin"},
		{Location{File: "stdin", Pos: 3}, "stdin[3]"},
		{Location{File: "f.lisp", Pos: 3, Line: 2}, "f.lisp:2"},
		{Location{File: "f.lisp", Pos: 3, Line: 2, Col: 4}, "f.lisp:2:4"},
	}
	for i, test := range tests {
		if got := test.loc.String(); got != test.want {
			t.Errorf("test %d: got %q, want %q", i, got, test.want)
		}
	}
}
