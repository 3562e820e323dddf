package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-trip-planner/internal/api/planner"
)

func newNormalizeCmd(root *rootOptions) *cobra.Command {
	var userID, destinationID string
	cmd := &cobra.Command{
		Use:   "normalize [file.json]",
		Short: "Normalize an itinerary payload into the canonical shape",
		Long: `Reads an itinerary JSON payload (from a file, or stdin when the argument
is omitted or "-") and prints it the way the planner stores it: missing fields
defaulted, dates parsed, costs coerced and the cost breakdown recomputed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if len(args) == 0 || args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}

			it, err := planner.NewNormalizer(root.logger(cmd), time.Now).Normalize(raw, userID, destinationID)
			if err != nil {
				return err
			}
			return root.write(cmd.OutOrStdout(), it)
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User id to stamp on the itinerary")
	cmd.Flags().StringVar(&destinationID, "destination", "", "Destination id to stamp on the itinerary")
	return cmd
}
