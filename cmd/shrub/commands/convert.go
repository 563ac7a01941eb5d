package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/dbradf/shrub-go/codec"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

func (c *CLI) newConvertCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Re-render project configurations as YAML or JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if target != "yaml" && target != "json" {
				return zerr.With(zerr.New("unknown target format"), "format", target)
			}

			// Files convert independently; outputs are collected by index
			// so the printed order matches the argument order.
			outputs := make([]string, len(args))
			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.NumCPU())

			for i, path := range args {
				g.Go(func() error {
					out, err := convertFile(path, target)
					if err != nil {
						return zerr.With(err, "file", path)
					}
					outputs[i] = out
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, out := range outputs {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", "json", "Output format (yaml or json)")
	return cmd
}

func convertFile(path, target string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return "", zerr.Wrap(err, "failed to read project file")
	}

	p, err := codec.Parse(string(data))
	if err != nil {
		return "", err
	}

	if target == "yaml" {
		return codec.Serialize(p)
	}
	return codec.SerializeJSON(p)
}
