package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/wlkit/internal/config"
	"github.com/1broseidon/wlkit/internal/output"
	"github.com/1broseidon/wlkit/internal/x11"
)

type outputRow struct {
	output.Output
	Pointer bool `json:"pointer,omitempty"`
}

func runOutputs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("outputs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/wlkit/config.yaml)")
	source := fs.String("source", "", "Output source: static or x11 (default: from config)")
	jsonOut := fs.Bool("json", false, "Print JSON")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: wlkit outputs [--path PATH] [--source static|x11] [--json]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "List the outputs the host would lay workspaces out on.")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cfg := res.Config
	if *source != "" {
		cfg.Server.OutputSource = config.OutputSource(*source)
	}

	rows, err := outputRows(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if *jsonOut {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}
	printOutputs(stdout, rows, isTerminal(stdout))
	return 0
}

func outputRows(cfg *config.Config) ([]outputRow, error) {
	switch cfg.Server.OutputSource {
	case config.OutputSourceStatic:
		var rows []outputRow
		for _, o := range cfg.StaticOutputs() {
			rows = append(rows, outputRow{Output: o})
		}
		return rows, nil

	case config.OutputSourceX11:
		conn, err := x11.NewConnection(cfg.Server.Display)
		if err != nil {
			return nil, err
		}
		defer conn.Close()

		outs, err := conn.Outputs()
		if err != nil {
			return nil, err
		}
		px, py, perr := conn.PointerPosition()
		under, found := output.At(output.NewStatic(outs...), px, py)

		rows := make([]outputRow, 0, len(outs))
		for _, o := range outs {
			rows = append(rows, outputRow{Output: o, Pointer: perr == nil && found && under.ID == o.ID})
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("unknown output source %q", cfg.Server.OutputSource)
	}
}

func printOutputs(w io.Writer, rows []outputRow, header bool) {
	if header {
		fmt.Fprintf(w, "  %-12s %-12s %-10s %s\n", "NAME", "MODE", "POSITION", "SCALE")
	}
	for _, r := range rows {
		mark := " "
		if r.Pointer {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %-12s %-12s %-10s %g\n",
			mark, r.ID,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d,%d", r.X, r.Y),
			r.Scale)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
