package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dbradf/shrub-go/codec"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [files...]",
		Short: "Check that project configurations are structurally valid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
				if err != nil {
					logger.Error("failed to read project file", "file", path, "error", err)
					failed++
					continue
				}
				if _, err := codec.Parse(string(data)); err != nil {
					logger.Error("invalid project configuration", "file", path, "error", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", path)
			}

			if failed > 0 {
				return zerr.With(zerr.New("lint failed"), "failed_files", failed)
			}
			return nil
		},
	}
}
