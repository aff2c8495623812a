package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagplacer/pkg/geom"
	pkgio "github.com/matzehuels/tagplacer/pkg/io"
	"github.com/matzehuels/tagplacer/pkg/pipeline"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// placeOpts holds the command-line flags for the place command.
// Placement flags override the config file only when set explicitly.
type placeOpts struct {
	output    string   // placed scene path (<input>.placed.json if empty)
	report    string   // report path (no report if empty)
	step      float64  // spiral step size
	clearance float64  // minimum distance to a feature
	count     int      // spiral candidates per tag
	category  string   // category of features to tag
	tagCat    string   // category of tag families
	family    string   // explicit tag family
	patterns  []string // family name patterns
	tagWidth  float64  // width of new tag boxes
	tagHeight float64  // height of new tag boxes
	workers   int      // tags placed concurrently
	region    string   // x1,y1,x2,y2 selection rectangle
	noCache   bool     // disable the placement cache
	refresh   bool     // recompute even when cached
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	var opts placeOpts

	cmd := &cobra.Command{
		Use:   "place <scene>",
		Short: "Tag features and move tags that crowd their neighbours",
		Long: `Tag every feature of a category and move each tag whose anchor is closer
than the clearance distance to a feature.

Features that already carry a tag keep it; the others get a new tag of the
matching tag family. The scene file can be JSON or YAML.

Examples:
  tagplacer place floor.json                         # writes floor.placed.json
  tagplacer place floor.yaml -o out.json --report report.json
  tagplacer place floor.json --clearance 2.5 --region 0,0,100,50`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.placeOptions(cmd, opts)
			if err != nil {
				return err
			}
			return c.runPlace(cmd.Context(), newPrinter(cmd), args[0], opts, popts)
		},
	}

	def := c.Config.Options()
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <scene>.placed.json)")
	cmd.Flags().StringVar(&opts.report, "report", "", "write a placement report to this file")
	cmd.Flags().Float64Var(&opts.step, "step", def.Step, "spiral step size")
	cmd.Flags().Float64Var(&opts.clearance, "clearance", def.Clearance, "minimum distance between a tag and a feature")
	cmd.Flags().IntVar(&opts.count, "count", def.Count, "spiral candidates per tag")
	cmd.Flags().StringVar(&opts.category, "category", def.Category, "category of features to tag")
	cmd.Flags().StringVar(&opts.tagCat, "tag-category", def.TagCategory, "category of tag families")
	cmd.Flags().StringVar(&opts.family, "family", "", "tag family to use (skips pattern matching)")
	cmd.Flags().StringSliceVar(&opts.patterns, "pattern", def.FamilyPatterns, "tag family name patterns")
	cmd.Flags().Float64Var(&opts.tagWidth, "tag-width", def.TagWidth, "width of new tags")
	cmd.Flags().Float64Var(&opts.tagHeight, "tag-height", def.TagHeight, "height of new tags")
	cmd.Flags().IntVar(&opts.workers, "workers", def.Workers, "tags placed concurrently")
	cmd.Flags().StringVar(&opts.region, "region", "", "only tag features inside x1,y1,x2,y2")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// placeOptions merges the loaded config with explicitly set flags.
func (c *CLI) placeOptions(cmd *cobra.Command, opts placeOpts) (pipeline.Options, error) {
	po := c.Config.Options()
	flags := cmd.Flags()

	if flags.Changed("step") {
		po.Step = opts.step
	}
	if flags.Changed("clearance") {
		po.Clearance = opts.clearance
	}
	if flags.Changed("count") {
		po.Count = opts.count
	}
	if flags.Changed("category") {
		po.Category = opts.category
	}
	if flags.Changed("tag-category") {
		po.TagCategory = opts.tagCat
	}
	if flags.Changed("family") {
		po.Family = opts.family
	}
	if flags.Changed("pattern") {
		po.FamilyPatterns = opts.patterns
	}
	if flags.Changed("tag-width") {
		po.TagWidth = opts.tagWidth
	}
	if flags.Changed("tag-height") {
		po.TagHeight = opts.tagHeight
	}
	if flags.Changed("workers") {
		po.Workers = opts.workers
	}
	if opts.region != "" {
		r, err := geom.ParseRect(opts.region)
		if err != nil {
			return po, err
		}
		po.Region = &r
	}
	po.Refresh = opts.refresh
	po.ChooseFamily = chooseFamilyInteractive
	return po, nil
}

func (c *CLI) runPlace(ctx context.Context, ui printer, input string, opts placeOpts, po pipeline.Options) error {
	sw := startStopwatch(log.FromContext(ctx))

	spinner := newSpinner(ctx, "Reading "+filepath.Base(input)+"...")
	spinner.Start()
	defer spinner.Stop()

	s, err := pkgio.ImportScene(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner.SetMessage(fmt.Sprintf("Placing tags on %d features...", len(s.Features)))
	if choose := po.ChooseFamily; choose != nil {
		po.ChooseFamily = func(matches []scene.TagFamily) (scene.TagFamily, error) {
			spinner.Stop()
			return choose(matches)
		}
	}
	res, err := runner.Execute(ctx, s, po)
	interrupted := spinner.Cancelled()
	spinner.Stop()
	switch {
	case err != nil && interrupted:
		ui.warn("Placement interrupted")
		return err
	case err != nil:
		ui.failure("Placement failed")
		return err
	}
	ui.success("Placed tags on %s", filepath.Base(input))
	res.Report.Scene = input

	output := opts.output
	if output == "" {
		output = placedPath(input)
	}
	if err := pkgio.ExportScene(res.Scene, output); err != nil {
		return err
	}
	sw.done("wrote placed scene", "path", output, "tags", res.Report.Stats.Targets)

	ui.stats(res.Report.Stats, res.CacheInfo.Hit)
	if res.Report.Family != "" {
		ui.field("Family", res.Report.Family+" / "+res.Report.Symbol)
	}
	ui.file(output)

	if opts.report != "" {
		if err := pkgio.ExportIndented(res.Report, opts.report); err != nil {
			return err
		}
		ui.file(opts.report)
	} else if res.Report.Stats.Corrected > 0 {
		ui.hint("Inspect moved tags", "tagplacer place "+input+" --report report.json")
	}
	return nil
}

// placedPath derives the default output path: floor.yaml -> floor.placed.json.
func placedPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".placed.json"
}
