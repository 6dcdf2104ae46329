package display

import (
	"fmt"
	"io"
	"os"

	"github.com/backmassage/convlog/internal/term"
)

const banner = `                           _
  ___ ___  _ ____   __   | | ___   __ _
 / __/ _ \| '_ \ \ / /   | |/ _ \ / _` + "`" + ` |
| (_| (_) | | | \ V /    | | (_) | (_| |
 \___\___/|_| |_|\_/     |_|\___/ \__, |
                                  |___/
`

// PrintBanner prints the ASCII art banner on stdout; uses Magenta if colors
// are enabled.
func PrintBanner(version string) {
	FprintBanner(os.Stdout, version)
}

// FprintBanner writes the banner and version line to w.
func FprintBanner(w io.Writer, version string) {
	fmt.Fprint(w, term.Magenta+banner+term.NC)
	fmt.Fprintf(w, "tenhou index -> mjai converter %s\n\n", version)
}
