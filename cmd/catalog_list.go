package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbuckley/quanta/internal/unit"
)

var (
	catalogPrefixed bool
	catalogPhysical string
)

var catalogListCmd = &cobra.Command{
	Use:   "catalog:list",
	Short: "List the units in the active catalog",
	Long: `List every unit in the active catalog with its names, definition,
and physical type. User catalog files from the configuration are included.

Prefixed forms (km, mJ, GHz, ...) are hidden by default.

Examples:
  # List the built-in catalog
  quanta catalog:list

  # Include the generated prefixed forms
  quanta catalog:list --prefixed

  # Only units of one physical type
  quanta catalog:list --physical energy
  quanta catalog:list --physical length`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.close()

		catalog := e.registry.Current()
		units := catalog.NonPrefixUnits()
		if catalogPrefixed {
			units = catalog.AllUnits()
		}

		type row struct {
			name, names, definition, physical string
		}
		var rows []row
		for _, u := range units {
			t := unit.PhysicalType(u)
			if catalogPhysical != "" && t != catalogPhysical {
				continue
			}
			r := row{
				name:     u.Name(),
				names:    strings.Join(u.Names(), ", "),
				physical: t,
			}
			if n, ok := u.(*unit.Named); ok {
				r.definition = n.Represents().String()
			}
			rows = append(rows, r)
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

		for _, r := range rows {
			line := r.names
			if r.definition != "" {
				line += " = " + r.definition
			}
			if r.physical != "unknown" {
				line += "  [" + r.physical + "]"
			}
			fmt.Println(line)
		}
		fmt.Printf("\n%d units\n", len(rows))
		return nil
	},
}

func init() {
	catalogListCmd.Flags().BoolVar(&catalogPrefixed, "prefixed", false,
		"include generated prefixed forms")
	catalogListCmd.Flags().StringVar(&catalogPhysical, "physical", "",
		"only show units of this physical type")
	rootCmd.AddCommand(catalogListCmd)
}
