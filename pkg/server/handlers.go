package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"

	"github.com/matzehuels/tagplacer/pkg/buildinfo"
	"github.com/matzehuels/tagplacer/pkg/errors"
	"github.com/matzehuels/tagplacer/pkg/geom"
	sceneio "github.com/matzehuels/tagplacer/pkg/io"
	"github.com/matzehuels/tagplacer/pkg/pipeline"
	"github.com/matzehuels/tagplacer/pkg/placement"
)

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

// =============================================================================
// Place
// =============================================================================

type placeRequest struct {
	Scene   json.RawMessage  `json:"scene"`
	Options pipeline.Options `json:"options"`
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if len(req.Scene) == 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}
	sc, err := sceneio.ReadJSON(bytes.NewReader(req.Scene))
	if err != nil {
		writeError(w, r, err)
		return
	}

	opts := s.mergeOptions(req.Options)
	if err := checkCount(opts.Count); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), sc, opts)
	if err != nil {
		if errors.GetCode(err) == "" {
			s.logger.Error("placement failed", "error", err)
		}
		writeError(w, r, err)
		return
	}

	if result.CacheInfo.Hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeJSON(w, http.StatusOK, result)
}

// mergeOptions fills fields the request left zero from the server defaults.
func (s *Server) mergeOptions(req pipeline.Options) pipeline.Options {
	d := s.defaults
	if req.Step == 0 {
		req.Step = d.Step
	}
	if req.Clearance == 0 {
		req.Clearance = d.Clearance
	}
	if req.Count == 0 {
		req.Count = d.Count
	}
	if req.Category == "" {
		req.Category = d.Category
	}
	if req.Region == nil && d.Region != nil {
		region := *d.Region
		req.Region = &region
	}
	if req.TagCategory == "" {
		req.TagCategory = d.TagCategory
	}
	if req.Family == "" {
		req.Family = d.Family
	}
	if len(req.FamilyPatterns) == 0 {
		req.FamilyPatterns = slices.Clone(d.FamilyPatterns)
	}
	if req.TagWidth == 0 {
		req.TagWidth = d.TagWidth
	}
	if req.TagHeight == 0 {
		req.TagHeight = d.TagHeight
	}
	if req.Workers == 0 {
		req.Workers = d.Workers
	}
	req.Logger = s.logger
	req.ChooseFamily = nil
	return req
}

// =============================================================================
// Spiral
// =============================================================================

type spiralRequest struct {
	Anchor geom.Point `json:"anchor"`
	Step   *float64   `json:"step,omitempty"`
	Count  *int       `json:"count,omitempty"`
}

type spiralResponse struct {
	Candidates []geom.Point `json:"candidates"`
}

func (s *Server) handleSpiral(w http.ResponseWriter, r *http.Request) {
	var req spiralRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p := s.placer(req.Step, nil, req.Count)
	if err := checkCount(p.Count); err != nil {
		writeError(w, r, err)
		return
	}
	candidates, err := placement.Candidates(req.Anchor, p.Step, p.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, spiralResponse{Candidates: candidates})
}

// =============================================================================
// Resolve
// =============================================================================

// resolveRequest carries either explicit candidates or an anchor to spiral
// around.
type resolveRequest struct {
	Candidates []geom.Point `json:"candidates,omitempty"`
	Anchor     *geom.Point  `json:"anchor,omitempty"`
	Step       *float64     `json:"step,omitempty"`
	Count      *int         `json:"count,omitempty"`
	Obstacles  []geom.Point `json:"obstacles"`
	Clearance  *float64     `json:"clearance,omitempty"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	for i, o := range req.Obstacles {
		if err := errors.ValidateFinite(fmt.Sprintf("obstacle %d", i), o.X, o.Y, o.Z); err != nil {
			writeError(w, r, err)
			return
		}
	}

	p := s.placer(req.Step, req.Clearance, req.Count)
	if req.Anchor != nil {
		if err := checkCount(p.Count); err != nil {
			writeError(w, r, err)
			return
		}
	}
	var (
		c   placement.Correction
		err error
	)
	switch {
	case req.Candidates != nil && req.Anchor != nil:
		err = errors.New(errors.ErrCodeInvalidInput, "send either candidates or anchor, not both")
	case req.Candidates != nil:
		c, err = placement.ResolvePoints(req.Candidates, req.Obstacles, p.Clearance)
	case req.Anchor != nil:
		c, err = p.Place(*req.Anchor, req.Obstacles)
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "candidates or anchor is required")
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// checkCount rejects spiral lengths above maxCount. Smaller invalid counts
// are left to placement validation.
func checkCount(n int) error {
	if n > maxCount {
		return errors.New(errors.ErrCodeInvalidArgument, "count must be at most %d, got %d", maxCount, n)
	}
	return nil
}

// placer builds resolver settings from optional request values and the
// server defaults.
func (s *Server) placer(step, clearance *float64, count *int) placement.Placer {
	p := placement.DefaultPlacer()
	if s.defaults.Step != 0 {
		p.Step = s.defaults.Step
	}
	if s.defaults.Clearance != 0 {
		p.Clearance = s.defaults.Clearance
	}
	if s.defaults.Count != 0 {
		p.Count = s.defaults.Count
	}
	if step != nil {
		p.Step = *step
	}
	if clearance != nil {
		p.Clearance = *clearance
	}
	if count != nil {
		p.Count = *count
	}
	return p
}
