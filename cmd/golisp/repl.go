package main

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"golisp/lisp"
)

// runREPL is the line-oriented read loop described as an external
// collaborator of the interpreter core: read one line, parse it into zero
// or more expressions, evaluate each against the persistent root
// environment, and print a Result:/Error: line. EOF terminates the loop.
func runREPL(env *lisp.Env) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          effectivePrompt(),
		InterruptPrompt: "^C",
		EOFPrompt:       "",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	resultColor := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF || err != nil {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		exprs, err := lisp.NewParser(strings.NewReader(line)).Parse()
		if err != nil {
			errorColor.Printf("Error: %v\n", err)
			continue
		}
		for _, expr := range exprs {
			v, err := lisp.Eval(expr, env)
			if err != nil {
				errorColor.Printf("Error: %v\n", err)
				continue
			}
			resultColor.Printf("Result: %s\n", lisp.Display(v))
		}
	}
}

func effectivePrompt() string {
	if noPrompt {
		return ""
	}
	return prompt
}
