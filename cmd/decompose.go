package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbuckley/quanta/internal/tracing"
	"github.com/tbuckley/quanta/internal/unit"
)

var decomposeBases []string

var decomposeCmd = &cobra.Command{
	Use:   "decompose <unit>",
	Short: "Reduce a unit to irreducible bases",
	Long: `Reduce a unit expression to a scale factor times irreducible bases.

With --bases, the decomposition is re-expressed over the given units
instead; every dimension of the input must be covered or the command fails.

Examples:
  quanta decompose J
  quanta decompose "km/h"
  quanta decompose N --bases kg,km,s
  quanta decompose "kg s^2 / m" --bases "N,s,m"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		_, span := e.provider.Tracer().Start(context.Background(), tracing.SpanDecompose)
		defer span.End()
		span.SetAttributes(attribute.String(tracing.AttrUnitInput, args[0]))

		u, err := e.resolver.Parse(args[0])
		if err != nil {
			return err
		}

		var result unit.Unit
		if len(decomposeBases) > 0 {
			targets := make([]unit.Unit, 0, len(decomposeBases))
			for _, expr := range splitList(decomposeBases) {
				t, err := e.resolver.Parse(expr)
				if err != nil {
					return err
				}
				targets = append(targets, t)
			}
			result, err = unit.DecomposeInto(u, targets)
		} else {
			result, err = unit.Decompose(u)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s = %s\n", u.String(), result.String())
		if t := unit.PhysicalType(u); t != "unknown" {
			fmt.Printf("physical type: %s\n", t)
		}
		return nil
	},
}

// splitList flattens repeatable flags that may themselves hold
// comma-separated entries.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func init() {
	decomposeCmd.Flags().StringSliceVarP(&decomposeBases, "bases", "b", nil,
		"restrict decomposition to these units (repeatable or comma-separated)")
	rootCmd.AddCommand(decomposeCmd)
}
