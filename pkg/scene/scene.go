package scene

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
)

// Categories used by the default window tagging workflow.
const (
	CategoryWindows    = "windows"
	CategoryWindowTags = "window_tags"
)

// DefaultFamilyPatterns match the tag family names commonly shipped for windows.
var DefaultFamilyPatterns = []string{"Window Tag", "Window_Tag"}

// LeaderMode controls how a tag's leader line ends.
type LeaderMode string

const (
	// LeaderAttached snaps the leader end to the tagged feature.
	LeaderAttached LeaderMode = "attached"
	// LeaderFree lets the leader end float where it was placed.
	LeaderFree LeaderMode = "free"
)

// Feature is a point-located element in the drawing, such as a window.
type Feature struct {
	ID       string     `json:"id" yaml:"id"`
	Category string     `json:"category" yaml:"category"`
	Family   string     `json:"family,omitempty" yaml:"family,omitempty"`
	Location geom.Point `json:"location" yaml:"location"`
}

// TagFamily is a named tag style for one category. Symbols are its concrete
// types in document order.
type TagFamily struct {
	Name     string   `json:"name" yaml:"name"`
	Category string   `json:"category" yaml:"category"`
	Symbols  []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}

// FirstSymbol returns the family's first symbol.
func (f TagFamily) FirstSymbol() (string, error) {
	if len(f.Symbols) == 0 {
		return "", errors.New(errors.ErrCodeSymbolNotFound, "tag family %q has no symbols", f.Name)
	}
	return f.Symbols[0], nil
}

// Tag is an annotation attached to a feature.
type Tag struct {
	ID        string           `json:"id" yaml:"id"`
	FeatureID string           `json:"feature_id" yaml:"feature_id"`
	Family    string           `json:"family,omitempty" yaml:"family,omitempty"`
	Symbol    string           `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Head      geom.Point       `json:"head" yaml:"head"`
	BBox      geom.BoundingBox `json:"bbox" yaml:"bbox"`
	Leader    LeaderMode       `json:"leader,omitempty" yaml:"leader,omitempty"`
}

// NewTag creates a tag on f using the given family and symbol. The head sits on
// the feature location and the w×h box is centered there.
func NewTag(f Feature, family, symbol string, w, h float64) Tag {
	return Tag{
		ID:        "tag-" + f.ID,
		FeatureID: f.ID,
		Family:    family,
		Symbol:    symbol,
		Head:      f.Location,
		BBox:      geom.Centered(f.Location, w, h),
		Leader:    LeaderAttached,
	}
}

// Anchor returns the placement anchor: the midpoint of the box's right edge.
func (t Tag) Anchor() geom.Point {
	return t.BBox.RightEdgeMidpoint()
}

// MoveHead moves the head to p, translates the box by the same offset, and sets
// the leader free.
func (t *Tag) MoveHead(p geom.Point) {
	t.BBox = t.BBox.Translate(p.Sub(t.Head))
	t.Head = p
	t.Leader = LeaderFree
}

// Scene is a drawing's features, tag families and tags.
type Scene struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Features []Feature   `json:"features" yaml:"features"`
	Families []TagFamily `json:"families,omitempty" yaml:"families,omitempty"`
	Tags     []Tag       `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// FeaturesIn returns the features of the given category in document order.
// An empty category returns every feature.
func (s *Scene) FeaturesIn(category string) []Feature {
	if category == "" {
		return slices.Clone(s.Features)
	}
	return lo.Filter(s.Features, func(f Feature, _ int) bool {
		return f.Category == category
	})
}

// MatchFamilies returns the families of category whose name contains any of the
// patterns. With no patterns every family of the category matches.
func (s *Scene) MatchFamilies(category string, patterns ...string) []TagFamily {
	return lo.Filter(s.Families, func(f TagFamily, _ int) bool {
		if category != "" && f.Category != category {
			return false
		}
		if len(patterns) == 0 {
			return true
		}
		return lo.SomeBy(patterns, func(p string) bool {
			return strings.Contains(f.Name, p)
		})
	})
}

// FindFamily returns the family with the given name.
func (s *Scene) FindFamily(name string) (TagFamily, error) {
	f, ok := lo.Find(s.Families, func(f TagFamily) bool { return f.Name == name })
	if !ok {
		return TagFamily{}, errors.New(errors.ErrCodeFamilyNotFound, "no tag family named %q", name)
	}
	return f, nil
}

// TagFor returns the index of the first tag on the feature, or -1.
func (s *Scene) TagFor(featureID string) int {
	return slices.IndexFunc(s.Tags, func(t Tag) bool { return t.FeatureID == featureID })
}

// Clone returns a deep copy of s.
func (s *Scene) Clone() *Scene {
	c := &Scene{
		Name:     s.Name,
		Features: slices.Clone(s.Features),
		Tags:     slices.Clone(s.Tags),
		Families: slices.Clone(s.Families),
	}
	for i := range c.Families {
		c.Families[i].Symbols = slices.Clone(c.Families[i].Symbols)
	}
	return c
}

// Validate checks identifiers, coordinate finiteness and tag references.
func (s *Scene) Validate() error {
	ids := make(map[string]bool, len(s.Features))
	for _, f := range s.Features {
		if err := errors.ValidateIdentifier("feature", f.ID); err != nil {
			return err
		}
		if ids[f.ID] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate feature id %q", f.ID)
		}
		ids[f.ID] = true
		if !f.Location.IsFinite() {
			return errors.New(errors.ErrCodeInvalidInput, "feature %q has a non-finite location", f.ID)
		}
	}
	for _, fam := range s.Families {
		if err := errors.ValidateIdentifier("family", fam.Name); err != nil {
			return err
		}
	}
	for _, t := range s.Tags {
		if err := errors.ValidateIdentifier("tag", t.ID); err != nil {
			return err
		}
		if !ids[t.FeatureID] {
			return errors.New(errors.ErrCodeInvalidInput, "tag %q references unknown feature %q", t.ID, t.FeatureID)
		}
		if !t.Head.IsFinite() || !t.BBox.Min.IsFinite() || !t.BBox.Max.IsFinite() {
			return errors.New(errors.ErrCodeInvalidInput, "tag %q has non-finite coordinates", t.ID)
		}
		if t.BBox.Width() < 0 || t.BBox.Height() < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "tag %q has an inverted bounding box", t.ID)
		}
	}
	return nil
}

// Select returns the features whose location lies inside r, in input order.
func Select(features []Feature, r geom.Rect) []Feature {
	return lo.Filter(features, func(f Feature, _ int) bool {
		return r.Contains(f.Location)
	})
}

// Locations returns the locations of features in input order.
func Locations(features []Feature) []geom.Point {
	return lo.Map(features, func(f Feature, _ int) geom.Point {
		return f.Location
	})
}

// FamilyNames returns the names of families in input order.
func FamilyNames(families []TagFamily) []string {
	return lo.Map(families, func(f TagFamily, _ int) string { return f.Name })
}
