/*
File    : loom-lang/cmd/loom/main.go

loom is the command-line entry point: with no arguments it starts the
REPL; given a file argument it parses and evaluates that file; -e/--eval
runs a single expression from the command line; the server subcommand
opens a TCP listener where each connection gets its own Evaluator and a
UUID tag on every log line.
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/aksoft/loom-lang/eval"
	"github.com/aksoft/loom-lang/lexer"
	"github.com/aksoft/loom-lang/parser"
	"github.com/aksoft/loom-lang/repl"
)

func main() {
	app := &cli.Command{
		Name:  "loom",
		Usage: "a tiny expression language",
		Commands: []*cli.Command{
			serverCommand,
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "eval",
				Aliases: []string{"e"},
				Usage:   "evaluate <expr> and print the result, then exit",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if expr := cmd.String("eval"); expr != "" {
				return runOnce(expr)
			}
			if cmd.Args().Len() > 0 {
				return runFile(cmd.Args().First())
			}
			repl.New("loom >> ").Start(os.Stdout)
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "loom: %v\n", err)
		os.Exit(1)
	}
}

// runOnce parses and evaluates a single expression string, printing the
// result to stdout; parse or runtime errors go to stderr and the process
// exits with status 1.
func runOnce(src string) error {
	outcome, parseErrs := evalSource(src)
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}
	if outcome.IsError() {
		fmt.Fprintln(os.Stderr, outcome.Message())
		os.Exit(1)
	}
	fmt.Println(outcome.ValueOrNil().Inspect())
	return nil
}

// runFile reads, parses, and evaluates a whole file as one program.
func runFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	outcome, parseErrs := evalSource(string(data))
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}
	if outcome.IsError() {
		fmt.Fprintln(os.Stderr, outcome.Message())
		os.Exit(1)
	}
	fmt.Println(outcome.ValueOrNil().Inspect())
	return nil
}

func evalSource(src string) (eval.Outcome, []parser.ParserError) {
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return eval.Outcome{}, errs
	}
	return eval.New().Eval(program), nil
}

var serverCommand = &cli.Command{
	Name:  "server",
	Usage: "serve a line-oriented TCP evaluator",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "port",
			Value: 4000,
			Usage: "TCP port to listen on",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runServer(cmd.Int("port"))
	},
}

// runServer listens on port and spawns one connection handler per client.
// Each connection gets its own Evaluator (so clients don't see each
// other's bindings) and a short UUID tag that prefixes every log line for
// that session, making concurrent connections distinguishable in the log.
func runServer(port int64) error {
	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()

	logColor := color.New(color.FgCyan)
	logColor.Printf("loom server listening on %s\n", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			logColor.Printf("accept error: %v\n", err)
			continue
		}
		sessionID := uuid.New().String()[:8]
		go handleConnection(conn, sessionID)
	}
}

func handleConnection(conn net.Conn, sessionID string) {
	defer conn.Close()

	logColor := color.New(color.FgCyan)
	errColor := color.New(color.FgRed)
	logColor.Printf("[%s] connected: %s\n", sessionID, conn.RemoteAddr())
	defer logColor.Printf("[%s] disconnected\n", sessionID)

	evaluator := eval.New()
	scanner := bufio.NewScanner(conn)
	writer := bufio.NewWriter(conn)
	defer writer.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		p := parser.New(lexer.New(line))
		program := p.ParseProgram()
		if errs := p.Errors(); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(writer, "%s\n", e.Error())
				errColor.Printf("[%s] parse error: %s\n", sessionID, e.Error())
			}
			writer.Flush()
			continue
		}

		outcome := evaluator.Eval(program)
		if outcome.IsError() {
			fmt.Fprintf(writer, "%s\n", outcome.Message())
			errColor.Printf("[%s] runtime error: %s\n", sessionID, outcome.Message())
		} else {
			fmt.Fprintf(writer, "%s\n", outcome.ValueOrNil().Inspect())
		}
		writer.Flush()
	}
}
