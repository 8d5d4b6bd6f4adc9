// Command luna runs Luna scripts and hosts an interactive REPL.
//
// Grounded on the teacher's cmd/msg/main.go: a liner-backed prompt/history
// loop, colorless here since Luna has no formatter to colorize against, and
// signal handling to flush history before exit. Flag parsing is upgraded
// from the teacher's bare `flag` package to kong's declarative struct tags,
// per SPEC_FULL.md §2.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/peterh/liner"

	luna "github.com/lunalang/luna"
)

const (
	historyFile = ".luna_history"
	promptMain  = "luna> "
)

var cli struct {
	Script     string `arg:"" optional:"" help:"Script file to run. Omit to start the REPL." type:"existingfile"`
	Repl       bool   `help:"Start the REPL even when a script is given." short:"i"`
	DumpTokens bool   `help:"Print the lexed token stream instead of evaluating."`
	DumpAST    bool   `help:"Print the debug form of the parsed program's root node instead of evaluating; child nodes are not expanded."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("luna"),
		kong.Description("Luna scripting language interpreter."),
		kong.UsageOnError(),
	)

	if cli.Script == "" || cli.Repl {
		os.Exit(runRepl())
	}
	os.Exit(runScript(cli.Script))
}

func runScript(path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "luna: cannot read %s: %v\n", path, err)
		return 1
	}
	source := string(src)

	if cli.DumpTokens {
		dumpTokens(source)
		return 0
	}
	if cli.DumpAST {
		dumpAST(source)
		return 0
	}

	ip := luna.NewInterpreter(os.Stdout, bufio.NewReader(os.Stdin))
	_, diag, err := ip.RunSource(source)
	if diag.HasErrors() {
		diag.Dump(os.Stderr)
		return 1
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func dumpTokens(source string) {
	diag := luna.NewCollector(source)
	lx := luna.NewLexer(source, diag)
	tokens, ok := lx.Lex()
	for _, t := range tokens {
		fmt.Printf("%d:%d\t%s\t%q\n", t.Span.StartLine, t.Span.StartCol, t.Kind.String(), t.Lexeme)
	}
	if !ok {
		diag.Dump(os.Stderr)
	}
}

func dumpAST(source string) {
	diag := luna.NewCollector(source)
	prog, ok := luna.Parse(source, diag)
	if !ok {
		diag.Dump(os.Stderr)
		return
	}
	fmt.Println(prog.GoString())
}

func runRepl() int {
	fmt.Println("Luna REPL. Ctrl+D to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
		ln.Close()
		os.Exit(130)
	}()

	stdin := bufio.NewReader(os.Stdin)
	ip := luna.NewInterpreter(os.Stdout, stdin)

	for {
		line, err := ln.Prompt(promptMain)
		if err == io.EOF {
			fmt.Println()
			return 0
		}
		if err != nil {
			return 0
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		v, diag, err := ip.RunSource(line)
		if diag.HasErrors() {
			diag.Dump(os.Stderr)
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		s, c := luna.AsStringVal(v)
		if !c.IsOk() {
			fmt.Fprintln(os.Stderr, "<unprintable value>")
			continue
		}
		fmt.Println(s)
	}
}
