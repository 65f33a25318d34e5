package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/wardrobe/pkg/domain/model"
)

// collectInputs turns the positional argument into the list of items to
// process. A catalog URL or a bare number is a single item; anything else is
// a file with one URL or ID per line. Without an argument the user is asked.
func collectInputs(arg string, p *prompter) ([]string, error) {
	if arg == "" {
		input, err := p.Ask("Enter the clothing ID or URL: ")
		if err != nil {
			return nil, err
		}
		return []string{input}, nil
	}

	if model.IsCatalogURL(arg) || model.CatalogID(arg).Validate() == nil {
		return []string{arg}, nil
	}

	return readInputFile(arg)
}

// readInputFile returns the non-empty lines of path
func readInputFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open input file",
			goerr.T(model.ErrTagIO),
			goerr.V("path", path),
		)
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read input file",
			goerr.T(model.ErrTagIO),
			goerr.V("path", path),
		)
	}

	return inputs, nil
}
