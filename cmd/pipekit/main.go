package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kdemir/pipekit/logger"
)

const usage = `pipekit - declarative CD pipelines

Usage:
  pipekit validate <file>              lint a pipeline definition
  pipekit plan <file> [-p k=v]...      resolve a definition into execution batches
  pipekit run <file> [-p k=v]...       execute a definition locally
  pipekit serve                        start the HTTP service
  pipekit version                      print build information
`

func main() {
	os.Exit(Main(os.Args[1:], os.Stdout, os.Stderr))
}

// Main dispatches the subcommand and returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	logger.Init(&logger.Config{ServiceName: "pipekit", Level: "info", Format: "console"})

	var err error
	switch args[0] {
	case "validate":
		err = cmdValidate(args[1:], stdout)
	case "plan":
		err = cmdPlan(args[1:], stdout)
	case "run":
		err = cmdRun(args[1:], stdout)
	case "serve":
		err = cmdServe(args[1:])
	case "version":
		err = cmdVersion(stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "pipekit: unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintf(stderr, "pipekit: %v\n", err)
		return 1
	}
	return 0
}
