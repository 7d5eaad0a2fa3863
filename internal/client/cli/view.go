package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ymiyake/enquete/internal/client/flow"
)

// ConsoleView renders the flow on a line-oriented terminal.
type ConsoleView struct {
	reader *bufio.Reader
	out    io.Writer
}

var _ flow.View = (*ConsoleView)(nil)

func NewConsoleView(reader *bufio.Reader, out io.Writer) *ConsoleView {
	return &ConsoleView{reader: reader, out: out}
}

func (v *ConsoleView) Show(lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(v.out, line)
	}
}

func (v *ConsoleView) PromptText(prompt string) (string, error) {
	return GetSimpleText(v.reader, prompt, v.out)
}

func (v *ConsoleView) PromptPassword(prompt string) (string, error) {
	return GetPassword(v.reader, prompt, v.out)
}
