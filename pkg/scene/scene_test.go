package scene

import (
	"testing"

	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
)

func testScene() *Scene {
	return &Scene{
		Name: "level 1",
		Features: []Feature{
			{ID: "w1", Category: CategoryWindows, Location: geom.Point{X: 0, Y: 0}},
			{ID: "d1", Category: "doors", Location: geom.Point{X: 5, Y: 5}},
			{ID: "w2", Category: CategoryWindows, Location: geom.Point{X: 20, Y: 0}},
			{ID: "w3", Category: CategoryWindows, Location: geom.Point{X: 100, Y: 100}},
		},
		Families: []TagFamily{
			{Name: "Window Tag", Category: CategoryWindowTags, Symbols: []string{"Standard", "Large"}},
			{Name: "Door Tag", Category: "door_tags", Symbols: []string{"Standard"}},
			{Name: "Custom_Window_Tag", Category: CategoryWindowTags},
			{Name: "Window Tag (legacy)", Category: "generic_tags", Symbols: []string{"Old"}},
		},
		Tags: []Tag{
			{ID: "t-w2", FeatureID: "w2", Head: geom.Point{X: 20}, BBox: geom.Centered(geom.Point{X: 20}, 4, 2)},
		},
	}
}

func TestFeaturesIn(t *testing.T) {
	s := testScene()
	got := s.FeaturesIn(CategoryWindows)
	if len(got) != 3 || got[0].ID != "w1" || got[1].ID != "w2" || got[2].ID != "w3" {
		t.Errorf("FeaturesIn(windows) = %v", got)
	}
	if len(s.FeaturesIn("")) != 4 {
		t.Error("FeaturesIn(\"\") should return every feature")
	}
	if len(s.FeaturesIn("stairs")) != 0 {
		t.Error("FeaturesIn(stairs) should be empty")
	}
}

func TestSelect(t *testing.T) {
	s := testScene()
	got := Select(s.FeaturesIn(CategoryWindows), geom.NewRect(-1, -1, 25, 10))
	if len(got) != 2 || got[0].ID != "w1" || got[1].ID != "w2" {
		t.Errorf("Select = %v", got)
	}

	locs := Locations(got)
	if len(locs) != 2 || !locs[1].Equal(geom.Point{X: 20}) {
		t.Errorf("Locations = %v", locs)
	}
}

func TestMatchFamilies(t *testing.T) {
	s := testScene()

	got := s.MatchFamilies(CategoryWindowTags, DefaultFamilyPatterns...)
	names := FamilyNames(got)
	if len(names) != 2 || names[0] != "Window Tag" || names[1] != "Custom_Window_Tag" {
		t.Errorf("MatchFamilies = %v", names)
	}

	if got := s.MatchFamilies("", "Tag"); len(got) != 4 {
		t.Errorf("MatchFamilies(any category) = %d families, want 4", len(got))
	}
	if got := s.MatchFamilies(CategoryWindowTags); len(got) != 2 {
		t.Errorf("MatchFamilies(no patterns) = %d families, want 2", len(got))
	}
}

func TestFindFamilyAndSymbol(t *testing.T) {
	s := testScene()

	f, err := s.FindFamily("Window Tag")
	if err != nil {
		t.Fatalf("FindFamily error: %v", err)
	}
	sym, err := f.FirstSymbol()
	if err != nil || sym != "Standard" {
		t.Errorf("FirstSymbol = %q, %v", sym, err)
	}

	f, _ = s.FindFamily("Custom_Window_Tag")
	if _, err := f.FirstSymbol(); !errors.Is(err, errors.ErrCodeSymbolNotFound) {
		t.Errorf("FirstSymbol error = %v, want SYMBOL_NOT_FOUND", err)
	}

	if _, err := s.FindFamily("Nope"); !errors.Is(err, errors.ErrCodeFamilyNotFound) {
		t.Errorf("FindFamily error = %v, want FAMILY_NOT_FOUND", err)
	}
}

func TestTagFor(t *testing.T) {
	s := testScene()
	if i := s.TagFor("w2"); i != 0 {
		t.Errorf("TagFor(w2) = %d, want 0", i)
	}
	if i := s.TagFor("w1"); i != -1 {
		t.Errorf("TagFor(w1) = %d, want -1", i)
	}
}

func TestNewTagAndMoveHead(t *testing.T) {
	f := Feature{ID: "w9", Category: CategoryWindows, Location: geom.Point{X: 10, Y: 2, Z: 1}}
	tag := NewTag(f, "Window Tag", "Standard", 4, 2)

	if tag.ID != "tag-w9" || tag.FeatureID != "w9" || tag.Leader != LeaderAttached {
		t.Errorf("NewTag = %+v", tag)
	}
	if want := (geom.Point{X: 12, Y: 2, Z: 1}); !tag.Anchor().Equal(want) {
		t.Errorf("Anchor = %v, want %v", tag.Anchor(), want)
	}

	tag.MoveHead(geom.Point{X: 7, Y: 2, Z: 1})
	if !tag.Head.Equal(geom.Point{X: 7, Y: 2, Z: 1}) {
		t.Errorf("Head = %v", tag.Head)
	}
	if tag.Leader != LeaderFree {
		t.Errorf("Leader = %q, want free", tag.Leader)
	}
	if mid := tag.BBox.Min.Add(tag.BBox.Max).Scale(0.5); !mid.Equal(geom.Point{X: 7, Y: 2, Z: 1}) {
		t.Errorf("box did not follow head: center %v", mid)
	}
}

func TestClone(t *testing.T) {
	s := testScene()
	c := s.Clone()

	c.Features[0].ID = "changed"
	c.Tags[0].Head = geom.Point{X: -1}
	c.Families[0].Symbols[0] = "changed"

	if s.Features[0].ID != "w1" || !s.Tags[0].Head.Equal(geom.Point{X: 20}) || s.Families[0].Symbols[0] != "Standard" {
		t.Error("Clone shares state with the original scene")
	}
}

func TestValidate(t *testing.T) {
	if err := testScene().Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"empty feature id", func(s *Scene) { s.Features[0].ID = "" }},
		{"duplicate feature id", func(s *Scene) { s.Features[1].ID = "w1" }},
		{"dangling tag", func(s *Scene) { s.Tags[0].FeatureID = "ghost" }},
		{"empty family name", func(s *Scene) { s.Families[0].Name = "" }},
		{"inverted tag box", func(s *Scene) {
			b := &s.Tags[0].BBox
			b.Min, b.Max = b.Max, b.Min
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScene()
			tt.mutate(s)
			if err := s.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Validate error = %v, want INVALID_INPUT", err)
			}
		})
	}
}
