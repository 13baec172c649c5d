package display

import (
	"fmt"
	"io"
	"os"
)

// panelWidth matches the 16x2 character panel on the device.
const panelWidth = 16

// Console renders the two status lines to a writer, emulating the panel.
type Console struct {
	out io.Writer
}

// NewConsole creates a console display writing to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter creates a console display writing to out.
func NewConsoleWriter(out io.Writer) *Console {
	return &Console{out: out}
}

// Show replaces the panel contents with two lines, truncated to the panel
// width.
func (c *Console) Show(line1, line2 string) {
	fmt.Fprintf(c.out, "[%-*s]\n[%-*s]\n", panelWidth, clip(line1), panelWidth, clip(line2))
}

func clip(s string) string {
	runes := []rune(s)
	if len(runes) > panelWidth {
		return string(runes[:panelWidth])
	}
	return s
}

// Disabled is the display used when the panel is turned off.
type Disabled struct{}

func (Disabled) Show(line1, line2 string) {}
