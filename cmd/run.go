// Copyright © 2026 The ELPS authors

package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/haerfest/nextlisp/diagnostic"
	"github.com/haerfest/nextlisp/lisp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runCommand(v *viper.Viper) *cobra.Command {
	var (
		runExpression bool
		runPrint      bool
	)
	runCmd := &cobra.Command{
		Use:   "run [flags] FILE...",
		Short: "Run lisp code",
		Long: `Run lisp code supplied via the command line or files.

Expressions are evaluated in order in one global environment.  Evaluation
stops at the first error, which is shown with its source location, and the
command exits with status 1.

Use --trace to record a span for each function application:
  otel        OpenTelemetry spans, summarized on stderr
  opencensus  OpenCensus spans, summarized on stderr
  pprof       pprof goroutine labels (for use with an external profiler)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color, err := diagnostic.ParseColorMode(v.GetString(KeyColor))
			if err != nil {
				return err
			}
			srcs, err := runReadSources(args, runExpression)
			if err != nil {
				return err
			}
			config, err := envConfig(v, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tr, err := startTrace(cmd.Context(), v.GetString(KeyTrace), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if tr.profiler != nil {
				config = append(config, lisp.WithProfiler(tr.profiler))
			}
			env, err := lisp.NewUserEnv(config...)
			if err != nil {
				return err
			}
			err = runSources(env, srcs, runPrint)
			if traceErr := tr.finish(); traceErr != nil && err == nil {
				return fmt.Errorf("trace: %w", traceErr)
			}
			if err != nil {
				texts := make(map[string]string, len(srcs))
				for _, src := range srcs {
					texts[src.name] = src.text
				}
				renderError(cmd.ErrOrStderr(), color, err, texts)
				return errReported
			}
			return nil
		},
	}

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
	runCmd.Flags().String(KeyTrace, TraceNone, `Trace function applications: "none", "otel", "opencensus" or "pprof".`)
	mustBind(v, KeyTrace, runCmd.Flags())
	return runCmd
}

type source struct {
	name string
	text string
}

func runReadSources(args []string, expressions bool) ([]source, error) {
	srcs := make([]source, len(args))
	for i, arg := range args {
		if expressions {
			name := "expr"
			if len(args) > 1 {
				name = fmt.Sprintf("expr%d", i+1)
			}
			srcs[i] = source{name, arg}
			continue
		}
		b, err := os.ReadFile(arg) //nolint:gosec // user-specified source files
		if err != nil {
			return nil, err
		}
		srcs[i] = source{arg, string(b)}
	}
	return srcs, nil
}

// runSources evaluates each source in env, printing values to the runtime's
// standard output when print is true.  The first error is returned.
func runSources(env *lisp.LEnv, srcs []source, print bool) error {
	for _, src := range srcs {
		exprs, err := env.Runtime.Reader.Read(src.name, strings.NewReader(src.text))
		if err != nil {
			return err
		}
		for _, expr := range exprs {
			val := env.Eval(expr)
			if val.Type == lisp.LError {
				return lisp.GoError(val)
			}
			if print {
				if _, err := fmt.Fprintln(env.Runtime.Stdout, val); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
