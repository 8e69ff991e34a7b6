package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	switch args[0] {
	case "serve":
		return runServe(args[1:], stderr)
	case "outputs":
		return runOutputs(args[1:], stdout, stderr)
	case "status":
		return runStatus(args[1:], stdout, stderr)
	case "reload", "lock", "unlock":
		return runSimple(args[0], args[1:], stdout, stderr)
	case "tile":
		return runTile(args[1:], stdout, stderr)
	case "workspace":
		return runWorkspace(args[1:], stdout, stderr)
	case "config":
		return runConfig(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printMainUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(stderr)
		return 2
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wlkit <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve               Run the headless host (foreground)")
	fmt.Fprintln(w, "  outputs             List outputs of the configured source")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  status              Show host status")
	fmt.Fprintln(w, "  reload              Reload the host configuration")
	fmt.Fprintln(w, "  workspace NAME      Switch to a workspace")
	fmt.Fprintln(w, "  tile                Arrange windows of a workspace")
	fmt.Fprintln(w, "  lock                Lock the session")
	fmt.Fprintln(w, "  unlock              Unlock the session")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wlkit <command> --help' for command-specific options.")
}

func isHelp(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}
