package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-trip-planner/internal/api/planner"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type planOptions struct {
	catalogPath string
	tripName    string
	start       string
	end         string
	budget      float64
	style       string
	strategy    string
	interests   []string
}

type planResult struct {
	Request    types.TripRequest  `json:"request"`
	Allocation planner.Allocation `json:"allocation"`
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Allocate a day-by-day plan from a YAML catalog",
		Example: `  tripctl plan --catalog goa.yaml --start 2025-04-01 --end 2025-04-03 --budget 15000 --style budget
  tripctl plan --catalog goa.yaml --start 2025-04-01 --end 2025-04-05 --strategy round_robin --interests beach,history -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.catalogPath, "catalog", "", "Path to the destination catalog (YAML)")
	f.StringVar(&opts.tripName, "name", "", "Trip name")
	f.StringVar(&opts.start, "start", "", "First day of the trip (YYYY-MM-DD)")
	f.StringVar(&opts.end, "end", "", "Last day of the trip (YYYY-MM-DD)")
	f.Float64Var(&opts.budget, "budget", 0, "Trip budget in the catalog's currency")
	f.StringVar(&opts.style, "style", "", "Travel style: luxury, budget or balanced")
	f.StringVar(&opts.strategy, "strategy", planner.StrategyGreedy, "Allocation strategy: greedy or round_robin")
	f.StringSliceVar(&opts.interests, "interests", nil, "Comma separated interest tags")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func runPlan(cmd *cobra.Command, root *rootOptions, opts *planOptions) error {
	catalog, err := loadCatalog(opts.catalogPath)
	if err != nil {
		return err
	}

	budget := opts.budget
	req, err := planner.ParseTripParams(types.TripParams{
		DestinationID: catalog.Destination.ID.String(),
		TripName:      opts.tripName,
		StartDate:     opts.start,
		EndDate:       opts.end,
		Budget:        &budget,
		TravelStyle:   opts.style,
		Interests:     opts.interests,
	})
	if err != nil {
		return err
	}

	planOpts := planner.DefaultOptions()
	if catalog.Destination.Currency != "" {
		planOpts.Currency = catalog.Destination.Currency
	}
	strategy, err := planner.NewStrategies(planOpts).Get(opts.strategy, planner.StrategyGreedy)
	if err != nil {
		return err
	}

	alloc := planner.Run(strategy, catalog, req)
	l := root.logger(cmd).With(slog.String("strategy", alloc.Strategy))
	for _, o := range alloc.Overruns {
		l.Warn("Day exceeded the remaining budget",
			slog.Int("day", o.Day),
			slog.String("date", o.Date.String()),
			slog.Float64("day_cost", o.DayCost),
			slog.Float64("remaining_before", o.RemainingBefore))
	}
	return root.write(cmd.OutOrStdout(), planResult{Request: req, Allocation: alloc})
}

// loadCatalog reads a catalog document. A catalog without a destination id
// cannot be planned against.
func loadCatalog(path string) (types.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	var catalog types.Catalog
	if err = yaml.Unmarshal(raw, &catalog); err != nil {
		return types.Catalog{}, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	if catalog.Destination.ID == uuid.Nil {
		return types.Catalog{}, fmt.Errorf("catalog %s has no destination id", path)
	}
	return catalog, nil
}
