package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tagplacer/pkg/observability"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// =============================================================================
// Placement Stage
// =============================================================================

// place runs select → tag → place on a copy of s. opts must be validated.
func (r *Runner) place(ctx context.Context, s *scene.Scene, opts Options) (result *Result, chosen bool, err error) {
	start := time.Now()
	out := s.Clone()

	targets := out.FeaturesIn(opts.Category)
	if opts.Region != nil {
		targets = scene.Select(targets, *opts.Region)
	}
	obstacles := scene.Locations(targets)

	report := Report{
		ID:         uuid.NewString(),
		Scene:      s.Name,
		Placer:     opts.Placer(),
		Placements: make([]Placement, len(targets)),
	}

	hooks := observability.Placement()
	hooks.OnBatchStart(ctx, len(targets))
	defer func() {
		hooks.OnBatchComplete(ctx, observability.BatchStats{
			Tags:      report.Stats.Targets,
			Created:   report.Stats.Created,
			Corrected: report.Stats.Corrected,
			Unchanged: report.Stats.Unchanged,
		}, time.Since(start), err)
	}()

	if len(targets) == 0 {
		opts.Logger.Warn("no features to tag", "category", opts.Category, "region", opts.Region)
		report.Stats.Duration = time.Since(start)
		return &Result{Scene: out, Report: report}, false, nil
	}

	// Family lookup is only needed when some target has no tag yet.
	needsTag := lo.SomeBy(targets, func(f scene.Feature) bool { return out.TagFor(f.ID) < 0 })
	if needsTag {
		family, symbol, picked, err := resolveFamily(out, opts)
		if err != nil {
			return nil, picked, err
		}
		report.Family, report.Symbol, chosen = family.Name, symbol, picked
		opts.Logger.Debug("resolved tag family", "family", family.Name, "symbol", symbol)
	}

	tags := make([]scene.Tag, len(targets))
	existing := make([]int, len(targets))
	for i, f := range targets {
		existing[i] = out.TagFor(f.ID)
		if existing[i] >= 0 {
			tags[i] = out.Tags[existing[i]]
		} else {
			tags[i] = scene.NewTag(f, report.Family, report.Symbol, opts.TagWidth, opts.TagHeight)
		}
	}

	placer := opts.Placer()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tag := &tags[i]
			anchor := tag.Anchor()
			c, err := placer.Place(anchor, obstacles)
			if err != nil {
				return fmt.Errorf("place tag %s: %w", tag.ID, err)
			}

			p := Placement{
				TagID:          tag.ID,
				FeatureID:      targets[i].ID,
				Created:        existing[i] < 0,
				Anchor:         anchor,
				Outcome:        c.Outcome,
				CandidateIndex: c.CandidateIndex,
				Inspected:      c.Inspected,
			}
			if c.Corrected() {
				tag.MoveHead(c.Point)
				obstacle := c.Obstacle
				p.Obstacle = &obstacle
				p.ObstacleFeature = targets[c.ObstacleIndex].ID
			}
			p.Head = tag.Head
			report.Placements[i] = p

			hooks.OnTagPlaced(gctx, tag.ID, c.Outcome.String(), c.Inspected)
			opts.Logger.Debug("placed tag",
				"tag", tag.ID,
				"outcome", c.Outcome,
				"inspected", c.Inspected)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, chosen, err
	}

	// Write results back in target order.
	for i := range targets {
		if existing[i] >= 0 {
			out.Tags[existing[i]] = tags[i]
		} else {
			out.Tags = append(out.Tags, tags[i])
			report.Stats.Created++
		}
		if report.Placements[i].Obstacle != nil {
			report.Stats.Corrected++
		} else {
			report.Stats.Unchanged++
		}
	}
	report.Stats.Targets = len(targets)
	report.Stats.Duration = time.Since(start)

	opts.Logger.Info("placed tags",
		"tags", report.Stats.Targets,
		"created", report.Stats.Created,
		"corrected", report.Stats.Corrected,
		"duration", report.Stats.Duration)

	return &Result{Scene: out, Report: report}, chosen, nil
}
