package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbuckley/quanta/internal/tracing"
	"github.com/tbuckley/quanta/internal/unit"
)

var (
	composeUnits    []string
	composeSystem   string
	composePrefixes bool
	composeMax      int
)

var composeCmd = &cobra.Command{
	Use:   "compose <unit>",
	Short: "Find named representations of a unit",
	Long: `Search the catalog for representations equivalent to the given unit,
ranked by naturalness: fewest distinct units first, then all-integer
powers, then scale closest to one.

Examples:
  # What named units equal kg m^2 / s^2?
  quanta compose "kg m^2 / s^2"

  # Restrict the candidate catalog
  quanta compose "kg s^2 / m" --units N,s,m

  # Compose into a specific system
  quanta compose J --system cgs

  # Include prefixed forms like kN or mJ
  quanta compose "J/m" --prefixes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		_, span := e.provider.Tracer().Start(context.Background(), tracing.SpanCompose)
		defer span.End()
		span.SetAttributes(
			attribute.String(tracing.AttrUnitInput, args[0]),
			attribute.Bool(tracing.AttrIncludePrefix, composePrefixes),
		)

		u, err := e.resolver.Parse(args[0])
		if err != nil {
			return err
		}

		var results []*unit.Composite
		switch {
		case len(composeUnits) > 0:
			candidates := make([]unit.Unit, 0, len(composeUnits))
			for _, name := range splitList(composeUnits) {
				c, err := e.resolver.Resolve(name)
				if err != nil {
					return err
				}
				candidates = append(candidates, c)
			}
			results, err = unit.Compose(u,
				unit.WithCandidates(candidates...),
				unit.WithPrefixUnits(composePrefixes))
		case cmd.Flags().Changed("system"):
			system, sysErr := systemUnits(composeSystem)
			if sysErr != nil {
				return sysErr
			}
			results, err = unit.ToSystem(u, system)
		default:
			results, err = unit.Compose(u,
				unit.WithContext(e.registry),
				unit.WithPrefixUnits(composePrefixes))
		}
		if err != nil {
			return err
		}

		span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(results)))

		if composeMax > 0 && len(results) > composeMax {
			results = results[:composeMax]
		}
		for _, r := range results {
			fmt.Println(r.String())
		}
		return nil
	},
}

func init() {
	composeCmd.Flags().StringSliceVarP(&composeUnits, "units", "u", nil,
		"candidate units (repeatable or comma-separated)")
	composeCmd.Flags().StringVarP(&composeSystem, "system", "s", "",
		"compose into a unit system: si or cgs")
	composeCmd.Flags().BoolVarP(&composePrefixes, "prefixes", "p", false,
		"include prefixed forms as candidates")
	composeCmd.Flags().IntVarP(&composeMax, "max", "n", 0,
		"show at most this many results (0 = all)")
	rootCmd.AddCommand(composeCmd)
}
