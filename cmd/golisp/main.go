// Command golisp is an interactive tree-walking interpreter for a small
// Lisp-family expression language. It reads one line at a time, parses
// each line into zero or more expressions, evaluates them against a
// persistent global environment, and prints the result or a diagnostic.
package main

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"golisp/lisp"
)

var (
	prompt   string
	noPrompt bool
	maxDepth int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "golisp [files...]",
		Short: "A tree-walking interpreter for a small Lisp-family language",
		RunE:  runRoot,
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	cmd.Flags().StringVar(&prompt, "prompt", "> ", "interactive prompt")
	cmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "suppress the interactive prompt")
	cmd.Flags().IntVar(&maxDepth, "depth", 100000, "maximum evaluation recursion depth (0 means unlimited)")
	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	env := lisp.NewRootEnv()
	env.SetMaxDepth(maxDepth)
	lisp.LoadStdlib(env)

	for _, path := range args {
		if err := loadFile(env, path); err != nil {
			log.Printf("while loading %s: %v", path, errors.Cause(err))
			return errors.Wrapf(err, "while loading %s", path)
		}
	}

	return runREPL(env)
}

// loadFile evaluates every expression in the named file against env,
// silently, before the interactive loop starts.
func loadFile(env *lisp.Env, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open")
	}
	defer f.Close()

	exprs, err := lisp.NewParser(f).Parse()
	if err != nil {
		return errors.Wrap(err, "parse")
	}
	for _, expr := range exprs {
		if _, err := lisp.Eval(expr, env); err != nil {
			return errors.Wrap(err, "eval")
		}
	}
	return nil
}
