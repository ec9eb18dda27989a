// Copyright © 2026 The ELPS authors

package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/haerfest/nextlisp/diagnostic"
	"github.com/haerfest/nextlisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runPlain(t *testing.T, input string, opts ...Option) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]Option{
		WithPlain(true),
		WithStdin(io.NopCloser(strings.NewReader(input))),
		WithStdout(&stdout),
		WithStderr(&stderr),
		WithColor(diagnostic.ColorNever),
		WithHistoryFile(""),
	}, opts...)
	require.NoError(t, RunRepl("> ", opts...))
	return stdout.String(), stderr.String()
}

func TestRunReplPlain(t *testing.T) {
	stdout, stderr := runPlain(t, "(+ 1 1)\n\n(cons 'a '(b))\n(print \"hi\")\n")
	assert.Equal(t, "2\n(A B)\n\"hi\"\n\"hi\"\n", stdout)
	assert.Empty(t, stderr)
}

func TestRunReplRecoversFromErrors(t *testing.T) {
	stdout, stderr := runPlain(t, "(a b\n(car '(x y))\nfnord\n(quote c)")
	assert.Equal(t, "X\nC\n", stdout)
	assert.Contains(t, stderr, "error[incomplete-expression]")
	assert.Contains(t, stderr, "error[unbound-symbol]: unbound symbol: FNORD")
	assert.Contains(t, stderr, "--> stdin:3:1")
	assert.Contains(t, stderr, " 3 |  fnord")
}

func TestRunReplEnvironmentPersists(t *testing.T) {
	stdout, stderr := runPlain(t, "((label f (lambda (x) (cond ((null x) 'done) (t (f (cdr x)))))) '(1 2))\nf\n")
	assert.Equal(t, "DONE\n", stdout)
	assert.Contains(t, stderr, "unbound-symbol")
}

func TestRunReplLineTooLong(t *testing.T) {
	stdout, stderr := runPlain(t, "(list 1 2 3 4 5)\n'ok\n", WithMaxLineLength(10))
	assert.Equal(t, "OK\n", stdout)
	assert.Contains(t, stderr, "error: line too long")
	assert.Contains(t, stderr, "--> stdin:1")
}

func TestRunReplEnvConfig(t *testing.T) {
	stdout, stderr := runPlain(t, "((label f (lambda (n) (f n))) 1)\n'ok\n",
		WithEnvConfig(lisp.WithMaximumStackHeight(20)))
	assert.Equal(t, "OK\n", stdout)
	assert.Contains(t, stderr, "error[stack-exhausted]")
}

func TestRunReplStackNotes(t *testing.T) {
	_, stderr := runPlain(t, "((lambda (x) (car x)) 'a)\n")
	assert.Contains(t, stderr, "error[wrong-type]")
	assert.Contains(t, stderr, "= note: in CAR at stdin:1:15")
	assert.Contains(t, stderr, "= note: in LAMBDA at stdin:1:2")
}

func runReplWithString(t *testing.T, input string) string {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	go func() {
		defer inW.Close() //nolint:errcheck // test cleanup
		_, _ = io.WriteString(inW, input)
	}()

	histFile := filepath.Join(t.TempDir(), DefaultHistoryFile)
	go func() {
		err := RunRepl("lisp> ",
			WithStdin(inR),
			WithStdout(outW),
			WithStderr(outW),
			WithColor(diagnostic.ColorNever),
			WithHistoryFile(histFile))
		assert.NoError(t, err)
		inR.Close()  //nolint:errcheck,gosec // test cleanup
		outW.Close() //nolint:errcheck,gosec // test cleanup
	}()

	var output bytes.Buffer
	_, _ = io.Copy(&output, outR)
	outR.Close() //nolint:errcheck,gosec // test cleanup
	return output.String()
}

func TestRunRepl(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Simple Addition",
			input:    "(+ 1 1)\n",
			expected: "2\n",
		},
		{
			name:     "Error",
			input:    "fnord\n",
			expected: "unbound symbol",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := runReplWithString(t, tc.input)
			require.Contains(t, got, tc.expected)
		})
	}
}

func TestEnsureHistoryFilePermissions_CreatesWithRestrictedMode(t *testing.T) {
	histFile := filepath.Join(t.TempDir(), DefaultHistoryFile)

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err, "history file should be created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "new history file should have mode 0600")
}

func TestEnsureHistoryFilePermissions_RestrictsExistingFile(t *testing.T) {
	histFile := filepath.Join(t.TempDir(), DefaultHistoryFile)
	err := os.WriteFile(histFile, []byte("some history"), 0644)
	require.NoError(t, err)

	ensureHistoryFilePermissions(histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "existing history file should be restricted to 0600")

	data, err := os.ReadFile(histFile)
	require.NoError(t, err)
	assert.Equal(t, "some history", string(data))
}

func TestEnsureHistoryFilePermissions_EmptyPathNoOp(t *testing.T) {
	ensureHistoryFilePermissions("")
}
