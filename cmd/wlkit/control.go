package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/1broseidon/wlkit/internal/ipc"
)

// newClient is swapped in tests.
var newClient = ipc.NewClient

func runStatus(args []string, stdout, stderr io.Writer) int {
	if isHelp(args) {
		fmt.Fprintln(stdout, "Usage: wlkit status")
		return 0
	}
	status, err := newClient().GetStatus()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "workspace: %s (%s)\n", status.CurrentWorkspace, strings.Join(status.Workspaces, ", "))
	fmt.Fprintf(stdout, "windows:   %d\n", status.WindowCount)
	fmt.Fprintf(stdout, "outputs:   %d\n", status.OutputCount)
	fmt.Fprintf(stdout, "locked:    %t\n", status.Locked)
	fmt.Fprintf(stdout, "uptime:    %ds\n", status.UptimeSeconds)
	return 0
}

func runSimple(cmd string, args []string, stdout, stderr io.Writer) int {
	if isHelp(args) {
		fmt.Fprintf(stdout, "Usage: wlkit %s\n", cmd)
		return 0
	}
	c := newClient()
	var err error
	switch cmd {
	case "reload":
		err = c.Reload()
	case "lock":
		err = c.Lock()
	case "unlock":
		err = c.Unlock()
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runWorkspace(args []string, stdout, stderr io.Writer) int {
	if isHelp(args) {
		fmt.Fprintln(stdout, "Usage: wlkit workspace NAME")
		return 0
	}
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: wlkit workspace NAME")
		return 2
	}
	if err := newClient().SwitchWorkspace(args[0]); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func runTile(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	workspace := fs.String("workspace", "", "Workspace to arrange (default: current)")
	mode := fs.String("mode", "", "grid, vertical, horizontal or master_stack (default: from config)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ids, err := newClient().Tile(*workspace, *mode)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "tiled %d windows\n", len(ids))
	return 0
}
