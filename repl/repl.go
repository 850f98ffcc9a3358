/*
File    : loom-lang/repl/repl.go

Package repl implements the interactive Read-Eval-Print Loop: each line is
lexed, parsed, and evaluated against a single Evaluator instance kept alive
for the whole session, so bindings made on one line are visible on the
next (§6's incremental-definition behavior).
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/aksoft/loom-lang/eval"
	"github.com/aksoft/loom-lang/lexer"
	"github.com/aksoft/loom-lang/parser"
)

var (
	promptColor = color.New(color.FgBlue)
	resultColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
	bannerColor = color.New(color.FgGreen)
)

const banner = `loom — a tiny expression language`

// Repl bundles the configuration for an interactive session.
type Repl struct {
	Prompt string
}

// New creates a Repl with the given prompt string.
func New(prompt string) *Repl {
	return &Repl{Prompt: prompt}
}

// Start runs the read-eval-print loop against writer until the user exits
// (.exit, or EOF via Ctrl+D). A single eval.Evaluator persists across
// every line read.
func (r *Repl) Start(writer io.Writer) {
	bannerColor.Fprintf(writer, "%s\n", banner)
	promptColor.Fprintf(writer, "Type '.exit' to quit\n")

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	evaluator := eval.New()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)
		r.evalLine(writer, line, evaluator)
	}
}

// evalLine lexes, parses, and evaluates a single line, rendering parse
// errors and runtime errors in red and a successful value in yellow.
func (r *Repl) evalLine(writer io.Writer, line string, evaluator *eval.Evaluator) {
	p := parser.New(lexer.New(line))
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			errorColor.Fprintf(writer, "%s\n", e.Error())
		}
		return
	}

	outcome := evaluator.Eval(program)
	if outcome.IsError() {
		errorColor.Fprintf(writer, "%s\n", outcome.Message())
		return
	}
	resultColor.Fprintf(writer, "%s\n", outcome.ValueOrNil().Inspect())
}
