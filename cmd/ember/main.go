// Command ember runs the Ember expression language interactively.
//
//	ember                 interactive prompt (line editing when stdin is a terminal)
//	ember -e 'VAR x = 2'  evaluate one line and exit
//	ember < script.em     evaluate each line of standard input
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/metaphox/ember/repl"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ember", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (default $HOME/"+repl.DefaultConfigName+")")
	expr := fs.String("e", "", "evaluate one line and exit")
	scoping := fs.String("scoping", "", "function call scoping: dynamic or lexical")
	showAST := fs.Bool("ast", false, "print the parsed tree before each result")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	path, optional := *configPath, false
	if path == "" {
		path, optional = repl.DefaultConfigPath(), true
	}
	cfg, err := repl.LoadConfig(path, optional)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *scoping != "" {
		cfg.Scoping = *scoping
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *showAST {
		cfg.ShowAST = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log := cfg.NewLogger(os.Stderr)
	r := repl.New(cfg, repl.NewSession(cfg, log), os.Stdout, os.Stderr)

	if *expr != "" {
		r.Handle(*expr)
		if r.Failures() > 0 {
			return 1
		}
		return 0
	}
	if isTerminal(os.Stdin) {
		err = r.RunInteractive()
	} else {
		err = r.RunLines(os.Stdin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
