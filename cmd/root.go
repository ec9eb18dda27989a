// Copyright © 2026 The ELPS authors

// Package cmd implements the nextlisp command line interface.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/haerfest/nextlisp/lisp"
	"github.com/haerfest/nextlisp/parser"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys.  Each key can be set in the config file, by a
// NEXTLISP_ prefixed environment variable or by the flag of the same name.
const (
	KeyPrompt         = "prompt"
	KeyMaxStackHeight = "max-stack-height"
	KeyMaxLineLength  = "max-line-length"
	KeyReader         = "reader"
	KeyColor          = "color"
	KeyHistoryFile    = "history-file"
	KeyTrace          = "trace"
)

// EnvPrefix prefixes the environment variables read for configuration.
const EnvPrefix = "NEXTLISP"

// errReported is returned by commands which have already shown the user
// what went wrong.
var errReported = errors.New("error reported")

// Execute runs the root command and exits the process with status 1 on
// failure.  This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err) //nolint:errcheck // best-effort error display
		}
		os.Exit(1)
	}
}

// NewRootCommand returns the nextlisp command with all subcommands attached.
// Each call returns an independent command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "nextlisp",
		Short: "A small Lisp interpreter",
		Long: `nextlisp interprets the Lisp of McCarthy's 1960 paper: atoms, pairs,
QUOTE, COND, LAMBDA and LABEL, with a handful of primitives.

Getting started:
  nextlisp                        Start an interactive REPL
  nextlisp run file.lisp          Run a Lisp source file
  nextlisp run -p -e '(+ 1 2)'    Evaluate an expression and print it
  nextlisp doc car                Show documentation for a primitive

Configuration is read from $HOME/.nextlisp.yaml (or --config) and from
NEXTLISP_* environment variables, e.g. NEXTLISP_MAX_STACK_HEIGHT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nextlisp.yaml)")
	flags.String(KeyColor, "auto", `Control colored output: "auto", "always", or "never".`)
	flags.Int(KeyMaxStackHeight, lisp.DefaultMaxHeight, "Maximum call stack height (0 for no limit).")
	flags.String(KeyReader, parser.ReaderRD, `Source reader: "rd" or "parsec".`)
	for _, key := range []string{KeyColor, KeyMaxStackHeight, KeyReader} {
		mustBind(v, key, flags)
	}

	replCmd := replCommand(v)
	rootCmd.AddCommand(replCmd, runCommand(v), docCommand())
	rootCmd.RunE = replCmd.RunE
	// The REPL is the default command so its flags are accepted at the top
	// level too.
	rootCmd.Flags().AddFlagSet(replCmd.Flags())
	return rootCmd
}

func mustBind(v *viper.Viper, key string, flags *pflag.FlagSet) {
	if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigName(".nextlisp")
	}
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// envConfig returns the lisp.Config for environments created by commands.
func envConfig(v *viper.Viper, stdout, stderr io.Writer) ([]lisp.Config, error) {
	reader, err := parser.NewReaderNamed(v.GetString(KeyReader))
	if err != nil {
		return nil, err
	}
	return []lisp.Config{
		lisp.WithMaximumStackHeight(v.GetInt(KeyMaxStackHeight)),
		lisp.WithReader(reader),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
	}, nil
}
