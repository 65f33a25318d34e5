package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// prompter asks questions on the terminal
type prompter struct {
	r *bufio.Reader
	w io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{r: bufio.NewReader(r), w: w}
}

// Ask prints question and returns the trimmed answer. EOF after a partial
// line is accepted; EOF without input yields an empty answer.
func (p *prompter) Ask(question string) (string, error) {
	if _, err := fmt.Fprint(p.w, question); err != nil {
		return "", goerr.Wrap(err, "failed to write prompt")
	}

	line, err := p.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", goerr.Wrap(err, "failed to read answer")
	}

	return strings.TrimSpace(line), nil
}

// Confirm returns true only for an answer of "y" or "Y"
func (p *prompter) Confirm(question string) bool {
	answer, err := p.Ask(question)
	if err != nil {
		return false
	}
	return strings.EqualFold(answer, "y")
}
