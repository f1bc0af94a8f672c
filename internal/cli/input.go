package cli

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/pipeline"
)

// openLines returns the lines of the file named by the first argument, or
// of the app's reader when there is none or it is "-".
func openLines(c *cli.Context) (pipeline.Iterator[string], error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		return pipeline.FromReader(io.NopCloser(c.App.Reader)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO("open", err).WithDetail("path", path)
	}
	return pipeline.FromReader(f), nil
}
