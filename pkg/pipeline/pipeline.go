// Package pipeline provides the batch tag placement pipeline for tagplacer.
//
// This package implements the select → tag → place flow that both the CLI and
// the HTTP API run. By centralizing it, every entry point resolves families,
// creates tags and applies corrections the same way.
//
// # Architecture
//
// A run consists of three steps:
//
//  1. Select: filter the scene's features by category, then by region
//  2. Tag: resolve the tag family and symbol, reuse or create one tag per feature
//  3. Place: move every tag whose anchor sits too close to a selected feature
//
// The selected features are also the obstacle set. Tags are placed
// concurrently, each worker writing only its own result slot, and the input
// scene is never mutated.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, s, pipeline.Options{
//	    Clearance: 3,
//	    Region:    &region,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range result.Report.Placements {
//	    fmt.Println(p.TagID, p.Outcome, p.Head)
//	}
package pipeline

import (
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagplacer/pkg/cache"
	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
	"github.com/matzehuels/tagplacer/pkg/placement"
	"github.com/matzehuels/tagplacer/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Config
// =============================================================================

const (
	// DefaultCategory is the feature category that gets tagged.
	DefaultCategory = scene.CategoryWindows

	// DefaultTagCategory is the category tag families are looked up in.
	DefaultTagCategory = scene.CategoryWindowTags

	// DefaultTagWidth is the box width of a newly created tag.
	DefaultTagWidth = 2.0

	// DefaultTagHeight is the box height of a newly created tag.
	DefaultTagHeight = 1.0
)

// DefaultWorkers is the default number of tags placed concurrently.
var DefaultWorkers = runtime.NumCPU()

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// FamilyChooser picks one family when several match the family patterns.
type FamilyChooser func(matches []scene.TagFamily) (scene.TagFamily, error)

// Options contains all configuration for a placement run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Resolver options
	Step      float64 `json:"step,omitempty"`
	Clearance float64 `json:"clearance,omitempty"`
	Count     int     `json:"count,omitempty"`

	// Selection options
	Category string     `json:"category,omitempty"`
	Region   *geom.Rect `json:"region,omitempty"`

	// Tag options
	TagCategory    string   `json:"tag_category,omitempty"`
	Family         string   `json:"family,omitempty"`
	FamilyPatterns []string `json:"family_patterns,omitempty"`
	TagWidth       float64  `json:"tag_width,omitempty"`
	TagHeight      float64  `json:"tag_height,omitempty"`

	// Execution options
	Workers int  `json:"workers,omitempty"`
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger       *log.Logger   `json:"-"`
	ChooseFamily FamilyChooser `json:"-"`
}

// SetDefaults fills every zero-valued field with its default.
func (o *Options) SetDefaults() {
	if o.Step == 0 {
		o.Step = placement.DefaultStep
	}
	if o.Clearance == 0 {
		o.Clearance = placement.DefaultClearance
	}
	if o.Count == 0 {
		o.Count = placement.DefaultCount
	}
	if o.Category == "" {
		o.Category = DefaultCategory
	}
	if o.TagCategory == "" {
		o.TagCategory = DefaultTagCategory
	}
	if len(o.FamilyPatterns) == 0 {
		o.FamilyPatterns = slices.Clone(scene.DefaultFamilyPatterns)
	}
	if o.TagWidth == 0 {
		o.TagWidth = DefaultTagWidth
	}
	if o.TagHeight == 0 {
		o.TagHeight = DefaultTagHeight
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks option values. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := o.Placer().Validate(); err != nil {
		return err
	}
	if err := errors.ValidatePositive("tag width", o.TagWidth); err != nil {
		return err
	}
	if err := errors.ValidatePositive("tag height", o.TagHeight); err != nil {
		return err
	}
	if err := errors.ValidateCount("workers", o.Workers); err != nil {
		return err
	}
	if o.Region != nil && !o.Region.Valid() {
		return errors.New(errors.ErrCodeInvalidRegion, "region %s is not a finite rectangle", o.Region)
	}
	if o.Family != "" {
		return errors.ValidateIdentifier("family", o.Family)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// Placer returns the resolver settings.
func (o *Options) Placer() placement.Placer {
	return placement.Placer{Step: o.Step, Clearance: o.Clearance, Count: o.Count}
}

// KeyOpts returns cache key options. Runtime-only fields are excluded.
func (o *Options) KeyOpts() cache.PlacementKeyOpts {
	k := cache.PlacementKeyOpts{
		Step:        o.Step,
		Clearance:   o.Clearance,
		Count:       o.Count,
		Category:    o.Category,
		TagCategory: o.TagCategory,
		Family:      o.Family,
		Patterns:    o.FamilyPatterns,
		TagWidth:    o.TagWidth,
		TagHeight:   o.TagHeight,
	}
	if o.Region != nil {
		k.Region = o.Region.String()
	}
	return k
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a placement run.
type Result struct {
	// Scene is the updated copy of the input scene.
	Scene *scene.Scene `json:"scene"`

	// Report describes every placement.
	Report Report `json:"report"`

	// SceneHash is the content hash of the input scene.
	SceneHash string `json:"-"`

	// CacheInfo tracks whether the result came from cache.
	CacheInfo CacheInfo `json:"-"`
}

// Report is the per-run summary written next to the placed scene.
type Report struct {
	ID         string           `json:"id"`
	Scene      string           `json:"scene,omitempty"`
	Family     string           `json:"family,omitempty"`
	Symbol     string           `json:"symbol,omitempty"`
	Placer     placement.Placer `json:"placer"`
	Placements []Placement      `json:"placements"`
	Stats      Stats            `json:"stats"`
}

// Placement records how one tag was placed.
type Placement struct {
	TagID     string            `json:"tag_id"`
	FeatureID string            `json:"feature_id"`
	Created   bool              `json:"created,omitempty"`
	Anchor    geom.Point        `json:"anchor"`
	Outcome   placement.Outcome `json:"outcome"`
	Head      geom.Point        `json:"head"`

	// Obstacle is the location that forced a correction, with its feature.
	Obstacle        *geom.Point `json:"obstacle,omitempty"`
	ObstacleFeature string      `json:"obstacle_feature,omitempty"`

	// CandidateIndex is the spiral position of the violating candidate, or -1.
	CandidateIndex int `json:"candidate_index"`
	Inspected      int `json:"inspected"`
}

// Stats contains run statistics.
type Stats struct {
	Targets   int           `json:"targets"`
	Created   int           `json:"created"`
	Corrected int           `json:"corrected"`
	Unchanged int           `json:"unchanged"`
	Duration  time.Duration `json:"duration_ns"`
}

// CacheInfo tracks cache use for a run.
type CacheInfo struct {
	Hit bool // Whether the result came from cache
}
