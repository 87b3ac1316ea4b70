package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"gocalc/pkg/calc"
)

const (
	prompt      = "> "
	historyFile = ".gocalc_history"
	helpText    = `Enter an arithmetic expression, e.g. 2 + 3 * (4 - 1) ^ 2
Operators: + - * / % ^ and unary -, parentheses for grouping.
  :verbose   toggle the token/AST/bytecode/execution report
  :help      show this text
  :quit      exit`
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
)

// session holds the state of one REPL run.
type session struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// handle processes one input line. It returns false once the user asked to
// leave.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	if strings.HasPrefix(line, ":") {
		switch strings.ToLower(line) {
		case ":quit", ":q", ":exit":
			return false
		case ":verbose", ":v":
			s.verbose = !s.verbose
			fmt.Fprintf(s.out, "verbose %s\n", onOff(s.verbose))
		case ":help", ":h":
			fmt.Fprintln(s.out, helpText)
		default:
			fmt.Fprintf(s.errOut, "unknown command %s. Type :help for a list.\n", line)
		}
		return true
	}

	if s.verbose {
		r, err := calc.Inspect(line)
		if werr := calc.WriteReport(s.out, r, err); werr != nil {
			log.Printf("writing report: %v", werr)
		}
		return true
	}

	v, err := calc.Evaluate(line)
	if err != nil {
		fmt.Fprintln(s.errOut, red(err.Error()))
		return true
	}
	fmt.Fprintln(s.out, green(calc.FormatResult(v)))
	return true
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// runPiped evaluates one expression per line of r without prompting.
func runPiped(s *session, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if !s.handle(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

func runInteractive(s *session) {
	fmt.Fprintln(s.out, "gocalc - type :help for help, :quit to exit")

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
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("reading input: %v", err)
			}
			fmt.Fprintln(s.out)
			return
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !s.handle(line) {
			return
		}
	}
}

func main() {
	verbose := flag.Bool("v", false, "start with the verbose report enabled")
	flag.Parse()

	s := &session{out: os.Stdout, errOut: os.Stderr, verbose: *verbose}

	if flag.NArg() > 0 {
		s.handle(strings.Join(flag.Args(), " "))
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		runInteractive(s)
		return
	}
	if err := runPiped(s, os.Stdin); err != nil {
		log.Fatalf("reading stdin: %v", err)
	}
}
