// Copyright © 2026 The ELPS authors

// Package repl implements an interactive read-eval-print loop.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/haerfest/nextlisp/diagnostic"
	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser"
	"github.com/haerfest/nextlisp/parser/rdparser"
)

// DefaultHistoryFile is the name of the history file in the home directory.
const DefaultHistoryFile = ".nextlisp_history"

type config struct {
	stdin         io.ReadCloser
	stdout        io.Writer
	stderr        io.Writer
	historyFile   string
	color         diagnostic.ColorMode
	maxLineLength int
	plain         bool
	envConfig     []lisp.Config
}

func newConfig(opts ...Option) *config {
	config := &config{
		historyFile:   historyPath(),
		maxLineLength: rdparser.DefaultMaxLineLength,
	}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// Option configures a REPL.
type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout overrides where evaluated values are printed.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithStderr allows overriding the error output of the REPL.
func WithStderr(stderr io.Writer) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithHistoryFile sets the readline history file.  An empty path disables
// history.
func WithHistoryFile(path string) Option {
	return func(c *config) {
		c.historyFile = path
	}
}

// WithColor sets the color mode of rendered errors.
func WithColor(mode diagnostic.ColorMode) Option {
	return func(c *config) {
		c.color = mode
	}
}

// WithMaxLineLength limits the length of input lines.  A value less than or
// equal to zero removes the limit.
func WithMaxLineLength(n int) Option {
	return func(c *config) {
		c.maxLineLength = n
	}
}

// WithPlain reads input lines directly instead of through a line editor.
func WithPlain(plain bool) Option {
	return func(c *config) {
		c.plain = plain
	}
}

// WithEnvConfig adds configuration for the environment created by RunRepl.
func WithEnvConfig(cfgs ...lisp.Config) Option {
	return func(c *config) {
		c.envConfig = append(c.envConfig, cfgs...)
	}
}

// RunRepl runs a repl in a new global environment.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	envOpts := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
	}
	if cfg.stdout != nil {
		envOpts = append(envOpts, lisp.WithStdout(cfg.stdout))
	}
	if cfg.stderr != nil {
		envOpts = append(envOpts, lisp.WithStderr(cfg.stderr))
	}
	envOpts = append(envOpts, cfg.envConfig...)
	env, err := lisp.NewUserEnv(envOpts...)
	if err != nil {
		return fmt.Errorf("language initialization failure: %w", err)
	}
	return RunEnv(env, prompt, opts...)
}

// RunEnv runs a repl with env as the global environment.  Each line of input
// holds one expression.  Its value is printed to the runtime's standard
// output, or its error rendered to the runtime's standard error, and the
// loop continues with the same environment.  RunEnv returns nil at the end
// of input.
func RunEnv(env *lisp.LEnv, prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	if cfg.stdout != nil {
		env.Runtime.Stdout = cfg.stdout
	}
	if cfg.stderr != nil {
		env.Runtime.Stderr = cfg.stderr
	}

	var next func() (string, error)
	if cfg.plain {
		stdin := cfg.stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		next = plainLines(stdin)
	} else {
		rl, err := newReadline(env, prompt, cfg)
		if err != nil {
			return err
		}
		defer rl.Close() //nolint:errcheck // best-effort cleanup
		next = readlineLines(rl)
	}

	s := &session{
		env: env,
		renderer: &diagnostic.Renderer{
			Color: cfg.color,
		},
	}
	s.renderer.SourceReader = s.readSource
	lr := rdparser.NewLineReaderFunc(s.record(next),
		rdparser.WithMaxLineLength(cfg.maxLineLength),
		rdparser.WithSourceName(SourceName))
	return s.loop(lr)
}

// SourceName is the file name given to REPL input in error locations.
const SourceName = "stdin"

type session struct {
	env      *lisp.LEnv
	lines    []string
	renderer *diagnostic.Renderer
}

func (s *session) loop(lr *rdparser.LineReader) error {
	for {
		expr, err := lr.ReadExpression()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if !isInputError(err) {
				return err
			}
			s.render(err)
			continue
		}
		val := s.env.Eval(expr)
		if val.Type == lisp.LError {
			s.render(lisp.GoError(val))
			continue
		}
		fmt.Fprintln(s.env.Runtime.Stdout, val) //nolint:errcheck // best-effort REPL output
	}
}

func (s *session) render(err error) {
	_ = s.renderer.Render(s.env.Runtime.Stderr, ErrorDiagnostic(err))
}

// record returns a line source which remembers the lines returned by next
// so errors can show them.
func (s *session) record(next func() (string, error)) func() (string, error) {
	return func() (string, error) {
		line, err := next()
		if err == nil {
			s.lines = append(s.lines, line)
		}
		return line, err
	}
}

func (s *session) readSource(name string) ([]byte, error) {
	if name != SourceName {
		return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
	}
	return []byte(strings.Join(s.lines, "\n")), nil
}

func isInputError(err error) bool {
	var lerr *lisp.ErrorVal
	return errors.As(err, &lerr) || errors.Is(err, rdparser.ErrLineTooLong)
}

func plainLines(r io.Reader) func() (string, error) {
	lr := rdparser.NewLineReader(r, rdparser.WithMaxLineLength(0))
	return lr.ReadLine
}

func newReadline(env *lisp.LEnv, prompt string, cfg *config) (*readline.Instance, error) {
	ensureHistoryFilePermissions(cfg.historyFile)
	rlCfg := &readline.Config{
		Stdout:            env.Runtime.Stdout,
		Stderr:            env.Runtime.Stderr,
		Prompt:            prompt,
		HistoryFile:       cfg.historyFile,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{env: env},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}
	return rl, nil
}

// readlineLines returns a line source reading from rl.  An interrupted line
// is discarded.
func readlineLines(rl *readline.Instance) func() (string, error) {
	return func() (string, error) {
		for {
			line, err := rl.ReadLine()
			if err == readline.ErrInterrupt {
				continue
			}
			return line, err
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultHistoryFile)
}

// ensureHistoryFilePermissions creates the history file if necessary and
// restricts it to the current user.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600) //nolint:gosec // user-specified history path
	if err != nil {
		return
	}
	_ = f.Close()
	_ = os.Chmod(path, 0600)
}
