package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/zephyrtronium/aleph"
	"github.com/zephyrtronium/aleph/session"
)

func main() {
	log.SetFlags(0)
	var (
		inname, sess string
		echo         bool
		with         [][2]string
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=expr", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file of expressions, one per line")
	flag.BoolVar(&echo, "echo", false, "print raw parse trees alongside results")
	flag.StringVar(&sess, "session", "", "session database to load at startup and save at exit")
	flag.Func("given", "name=expr variable definition (any number of times)", addwith)
	flag.Parse()

	ctx := aleph.NewContext()
	if sess != "" {
		store, err := session.Open(sess)
		if err != nil {
			log.Fatal(err)
		}
		if err := store.Load(ctx); err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := store.Save(ctx); err != nil {
				log.Print(err)
			}
			store.Close()
		}()
	}
	for _, d := range with {
		r, err := aleph.EvalString(d[1], ctx)
		if err != nil {
			log.Fatalf("setting %s: %v", d[0], err)
		}
		ctx.Set(d[0], r)
	}

	switch {
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			if !run(ctx, arg, echo) {
				os.Exit(1)
			}
		}
	case inname != "":
		f, err := os.Open(inname)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		scan := bufio.NewScanner(f)
		for scan.Scan() {
			line := strings.TrimSpace(scan.Text())
			if line == "" {
				continue
			}
			if !run(ctx, line, echo) {
				os.Exit(1)
			}
		}
		if err := scan.Err(); err != nil {
			log.Fatal(err)
		}
	default:
		repl(ctx, echo)
	}
}

// run evaluates one expression and prints the result, reporting whether it
// succeeded.
func run(ctx *aleph.Context, src string, echo bool) bool {
	e, err := aleph.ParseString(src)
	if err != nil {
		log.Print(err)
		return false
	}
	if echo {
		fmt.Printf("%s : ", aleph.ToStringRaw(e))
	}
	r, err := aleph.Evaluate(e, ctx)
	if err != nil {
		log.Print(err)
		return false
	}
	fmt.Println(aleph.ToString(r))
	return true
}

const (
	prompt       = "\033[32m>\033[0m "
	resultprompt = "\033[31m=\033[0m "
)

func repl(ctx *aleph.Context, echo bool) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       ".aleph-history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer l.Close()
	l.CaptureExitSignal()

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			log.Fatal(err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		e, err := aleph.ParseString(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if echo {
			fmt.Println(" ", aleph.ToStringRaw(e))
		}
		r, err := aleph.Evaluate(e, ctx)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Print(resultprompt)
		fmt.Println(aleph.ToString(r))
	}
}
