package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagplacer/pkg/geom"
	pkgio "github.com/matzehuels/tagplacer/pkg/io"
	"github.com/matzehuels/tagplacer/pkg/placement"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		flags    placerFlags
		anchor   string
		category string
		region   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <scene>",
		Short: "Resolve one anchor against the features of a scene",
		Long: `Walk the candidate spiral around an anchor and report the first candidate
that crowds a feature, together with the point it is pushed to.

The scene is only read; nothing is written.

Examples:
  tagplacer resolve floor.json --anchor 12,4
  tagplacer resolve floor.yaml --anchor 12,4 --clearance 2 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := geom.ParsePoint(anchor)
			if err != nil {
				return err
			}
			s, err := pkgio.ImportScene(args[0])
			if err != nil {
				return err
			}

			cat := c.Config.Placement.Category
			if cmd.Flags().Changed("category") {
				cat = category
			}
			features := s.FeaturesIn(cat)
			if region != "" {
				r, err := geom.ParseRect(region)
				if err != nil {
					return err
				}
				features = scene.Select(features, r)
			}

			p := flags.placer(cmd, c.Config.Placer())
			corr, err := p.Place(a, scene.Locations(features))
			if err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Debug("resolved anchor",
				"anchor", a, "obstacles", len(features), "outcome", corr.Outcome)

			if asJSON {
				return pkgio.WriteIndented(corr, cmd.OutOrStdout())
			}
			newPrinter(cmd).resolution(a, corr, features)
			if corr.Corrected() {
				points, err := placement.Candidates(a, p.Step, corr.Inspected)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderCandidates(points, a, &corr))
			}
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&anchor, "anchor", "", "anchor point as x,y or x,y,z")
	cmd.Flags().StringVar(&category, "category", "", "category of obstacle features (default from config)")
	cmd.Flags().StringVar(&region, "region", "", "only avoid features inside x1,y1,x2,y2")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the correction as JSON")
	_ = cmd.MarkFlagRequired("anchor")

	return cmd
}
