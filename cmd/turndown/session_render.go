package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"turndown/internal/api"
)

const (
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

// printSessionNotices surfaces degraded or offline operation and schema
// warnings above the command output. Live sessions with a current schema
// print nothing.
func printSessionNotices(out io.Writer, session api.Session) {
	colorize := shouldColorize(out)
	note := func(message string) {
		if colorize {
			message = ansiYellow + message + ansiReset
		}
		fmt.Fprintln(out, message)
	}

	switch session.Mode {
	case "offline":
		note("! working offline: showing the last synced snapshot; changes are not saved")
	case "degraded":
		note("! store schema incomplete: showing built-in reference data; changes are not saved")
	}
	if session.SchemaWarning {
		note("! the remote store is older than this build; some fields are unavailable")
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
