package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbuckley/quanta/internal/log"
	"github.com/tbuckley/quanta/internal/tracing"
	"github.com/tbuckley/quanta/internal/unit"
)

var convertEquivalencies []string

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a value between units",
	Long: `Convert a numeric value from one unit to another.

Both units may be arbitrary expressions. Conversion requires the two units
to share a decomposition; otherwise an equivalency must bridge them.

Examples:
  # Simple conversions
  quanta convert 1 h s
  quanta convert 100 km/h m/s
  quanta convert 2.5 kWh J

  # Temperature needs the non-linear equivalency
  quanta convert 20 deg_C K --equivalency temperature

  # Wavelength to frequency through the spectral equivalency
  quanta convert 500 nm THz --equivalency spectral

  # Parallax angle to distance
  quanta convert 0.1 arcsec pc --equivalency parallax`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[0], err)
		}

		_, span := e.provider.Tracer().Start(context.Background(), tracing.SpanConvert)
		defer span.End()
		span.SetAttributes(
			attribute.String(tracing.AttrUnitFrom, args[1]),
			attribute.String(tracing.AttrUnitTo, args[2]),
			attribute.Float64(tracing.AttrValue, value),
		)

		from, err := e.resolver.Parse(args[1])
		if err != nil {
			return err
		}
		to, err := e.resolver.Parse(args[2])
		if err != nil {
			return err
		}

		eqs, err := equivalenciesByName(convertEquivalencies)
		if err != nil {
			return err
		}

		result, err := unit.To(value, from, to, eqs...)
		if err != nil {
			log.ErrorErr(log.CatConvert, "conversion failed", err,
				"from", from.String(), "to", to.String())
			return err
		}

		span.SetAttributes(attribute.Float64(tracing.AttrResult, result))
		log.Debug(log.CatConvert, "converted",
			"value", value, "from", from.String(), "to", to.String(), "result", result)

		fmt.Printf("%v %s = %v %s\n", value, from.String(), result, to.String())
		return nil
	},
}

func init() {
	convertCmd.Flags().StringArrayVarP(&convertEquivalencies, "equivalency", "e", nil,
		"equivalency to apply: temperature, spectral, or parallax (repeatable)")
	rootCmd.AddCommand(convertCmd)
}
