// Copyright © 2026 The ELPS authors

package cmd

import (
	"io"
	"os"

	"github.com/haerfest/nextlisp/diagnostic"
	"github.com/haerfest/nextlisp/parser/rdparser"
	"github.com/haerfest/nextlisp/repl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultPrompt is the REPL prompt unless configured otherwise.
const DefaultPrompt = "lisp> "

func replCommand(v *viper.Viper) *cobra.Command {
	var plain bool
	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive Lisp REPL",
		Long: `Start an interactive read-eval-print loop.

Each line holds one expression.  Its value is printed, or its error shown,
and the loop continues with the same global environment.  Line editing,
history and tab completion of bound symbols are provided by readline unless
--plain is given.  Use Ctrl-D to exit.  Ctrl-C discards the current line.

Example REPL session:
  lisp> (cons 'a '(b c))
  (A B C)
  lisp> ((label fact (lambda (n) (cond ((eq n 0) 1) (t (* n (fact (- n 1))))))) 5)
  120`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := diagnostic.ParseColorMode(v.GetString(KeyColor))
			if err != nil {
				return err
			}
			config, err := envConfig(v, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts := []repl.Option{
				repl.WithStdout(cmd.OutOrStdout()),
				repl.WithStderr(cmd.ErrOrStderr()),
				repl.WithColor(color),
				repl.WithMaxLineLength(v.GetInt(KeyMaxLineLength)),
				repl.WithPlain(plain),
				repl.WithEnvConfig(config...),
			}
			if v.IsSet(KeyHistoryFile) {
				opts = append(opts, repl.WithHistoryFile(v.GetString(KeyHistoryFile)))
			}
			if in := cmd.InOrStdin(); in != os.Stdin {
				opts = append(opts, repl.WithStdin(io.NopCloser(in)))
			}
			return repl.RunRepl(v.GetString(KeyPrompt), opts...)
		},
	}

	flags := replCmd.Flags()
	flags.BoolVar(&plain, "plain", false, "Read lines without line editing.")
	flags.String(KeyPrompt, DefaultPrompt, "The REPL prompt.")
	flags.Int(KeyMaxLineLength, rdparser.DefaultMaxLineLength, "Longest accepted input line in bytes (0 for no limit).")
	flags.String(KeyHistoryFile, "", "REPL history file (default is $HOME/"+repl.DefaultHistoryFile+").")
	for _, key := range []string{KeyPrompt, KeyMaxLineLength, KeyHistoryFile} {
		mustBind(v, key, flags)
	}
	return replCmd
}
