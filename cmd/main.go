package main

import (
	"fmt"
	"os"

	"github.com/ostafen/gifdec/cmd/cmd"
	"github.com/ostafen/gifdec/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func PrintLogo() {
	fmt.Fprintln(os.Stderr, "        _  __     _           ")
	fmt.Fprintln(os.Stderr, "   __ _(_)/ _| __| | ___  ___ ")
	fmt.Fprintln(os.Stderr, "  / _` | | |_ / _` |/ _ \\/ __|")
	fmt.Fprintln(os.Stderr, " | (_| | |  _| (_| |  __/ (__ ")
	fmt.Fprintln(os.Stderr, "  \\__, |_|_|  \\__,_|\\___|\\___|")
	fmt.Fprintln(os.Stderr, "  |___/                       ")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "GIF decoding and frame extraction tool")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Version:   %s\n", env.Version)
	fmt.Fprintf(os.Stderr, "Commit:    %s\n", env.CommitHash)
	fmt.Fprintf(os.Stderr, "Build Time: %s\n", env.BuildTime)
	fmt.Fprintln(os.Stderr, " ")
}
