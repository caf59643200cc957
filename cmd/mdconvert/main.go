package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// run executes the command and returns its exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	flags, inputs, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		fmt.Fprintln(env.Stderr, "Run 'mdconvert --help' for usage.")
		return exitCodeFor(err)
	}

	switch {
	case flags.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.version:
		fmt.Fprintf(env.Stdout, "mdconvert %s\n", Version)
		return ExitSuccess
	}

	err = runConvert(ctx, flags, inputs, env)
	var batch *batchError
	switch {
	case err == nil:
	case errors.As(err, &batch):
		// each failure was printed with its file
	default:
		red := color.New(color.FgRed).SprintFunc()
		fmt.Fprintf(env.Stderr, "%s%s\n", red("Conversion failed: "+err.Error()), hintFor(err))
		if errors.Is(err, ErrNoInput) {
			printUsage(env.Stderr)
		}
	}
	return exitCodeFor(err)
}
