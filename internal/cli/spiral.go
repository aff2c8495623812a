package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagplacer/pkg/geom"
	pkgio "github.com/matzehuels/tagplacer/pkg/io"
	"github.com/matzehuels/tagplacer/pkg/placement"
)

// placerFlags are the resolver flags shared by spiral and resolve.
type placerFlags struct {
	step      float64
	clearance float64
	count     int
}

func (f *placerFlags) register(cmd *cobra.Command, clearance bool) {
	def := placement.DefaultPlacer()
	cmd.Flags().Float64Var(&f.step, "step", def.Step, "spiral step size")
	cmd.Flags().IntVar(&f.count, "count", def.Count, "number of candidates")
	if clearance {
		cmd.Flags().Float64Var(&f.clearance, "clearance", def.Clearance, "minimum distance to a feature")
	}
}

// placer merges the loaded config with explicitly set flags.
func (f *placerFlags) placer(cmd *cobra.Command, cfg placement.Placer) placement.Placer {
	if cmd.Flags().Changed("step") {
		cfg.Step = f.step
	}
	if cmd.Flags().Changed("count") {
		cfg.Count = f.count
	}
	if cmd.Flags().Changed("clearance") {
		cfg.Clearance = f.clearance
	}
	return cfg
}

// spiralCommand creates the spiral command.
func (c *CLI) spiralCommand() *cobra.Command {
	var (
		flags  placerFlags
		anchor string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "spiral",
		Short: "Print the candidate spiral around an anchor",
		Long: `Print the candidate positions walked around an anchor, in order.

The walk moves right, down, left and up on a square lattice whose spacing is
the step size. The first candidate is the anchor itself.

Examples:
  tagplacer spiral --anchor 10,20 --count 9
  tagplacer spiral --anchor 0,0,3 --step 2.5 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := geom.ParsePoint(anchor)
			if err != nil {
				return err
			}
			p := flags.placer(cmd, c.Config.Placer())
			points, err := placement.Candidates(a, p.Step, p.Count)
			if err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Debug("generated spiral", "anchor", a, "step", p.Step, "count", len(points))

			if asJSON {
				return pkgio.WriteIndented(points, cmd.OutOrStdout())
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCandidates(points, a, nil))
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&anchor, "anchor", "0,0", "anchor point as x,y or x,y,z")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print candidates as JSON")

	return cmd
}
