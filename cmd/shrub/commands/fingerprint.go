package commands

import (
	"fmt"
	"os"

	"github.com/dbradf/shrub-go/codec"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [files...]",
		Short: "Print a stable content fingerprint for project configurations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
				if err != nil {
					return zerr.With(zerr.Wrap(err, "failed to read project file"), "file", path)
				}

				p, err := codec.Parse(string(data))
				if err != nil {
					return zerr.With(err, "file", path)
				}

				sum, err := codec.Fingerprint(p)
				if err != nil {
					return zerr.With(err, "file", path)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%016x  %s\n", sum, path)
			}
			return nil
		},
	}
}
