package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/seqalign/pkg/align"
	"github.com/matzehuels/seqalign/pkg/buildinfo"
	errs "github.com/matzehuels/seqalign/pkg/errors"
	"github.com/matzehuels/seqalign/pkg/pipeline"
	"github.com/matzehuels/seqalign/pkg/store"
)

// alignRequest is the body of POST /api/v1/align. Unset scoring fields
// fall back to the server's scoring.
type alignRequest struct {
	Left        string `json:"left"`
	Top         string `json:"top"`
	LeftName    string `json:"left_name,omitempty"`
	TopName     string `json:"top_name,omitempty"`
	Match       *int   `json:"match,omitempty"`
	Mismatch    *int   `json:"mismatch,omitempty"`
	Gap         *int   `json:"gap,omitempty"`
	TerminalGap *int   `json:"terminal_gap,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Workers     int    `json:"workers,omitempty"`
	ShorterLeft bool   `json:"shorter_left,omitempty"`
}

func (req alignRequest) scoring(base align.Scoring) (align.Scoring, error) {
	s := base
	if req.Match != nil {
		s.Match = *req.Match
	}
	if req.Mismatch != nil {
		s.Mismatch = *req.Mismatch
	}
	if req.Gap != nil {
		s.Gap = *req.Gap
	}
	if req.TerminalGap != nil {
		s.TerminalGap = *req.TerminalGap
	}
	if req.Mode != "" {
		if err := errs.ValidateMode(req.Mode); err != nil {
			return align.Scoring{}, err
		}
		mode, err := align.ParseMode(req.Mode)
		if err != nil {
			return align.Scoring{}, errs.Wrap(errs.ErrCodeInvalidMode, err, "invalid mode")
		}
		s.Mode = mode
	}
	return s, nil
}

// alignmentResponse describes a stored alignment.
type alignmentResponse struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	LeftName   string            `json:"left_name"`
	TopName    string            `json:"top_name"`
	Left       string            `json:"left"`
	Top        string            `json:"top"`
	Mode       string            `json:"mode"`
	Score      int               `json:"score"`
	Alignments []align.Alignment `json:"alignments,omitempty"`
	Cached     bool              `json:"cached,omitempty"`
	Links      map[string]string `json:"links,omitempty"`
}

func summarize(rec *store.Record, withDetail bool) alignmentResponse {
	resp := alignmentResponse{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		LeftName:  rec.LeftName,
		TopName:   rec.TopName,
		Left:      rec.Document.Left,
		Top:       rec.Document.Top,
		Mode:      rec.Document.Scoring.Mode.String(),
		Score:     rec.Document.Score,
	}
	if withDetail {
		resp.Alignments = rec.Document.Alignments
		resp.Links = make(map[string]string, len(pipeline.SupportedFormats))
		for _, f := range pipeline.SupportedFormats {
			resp.Links[f] = "/api/v1/alignments/" + rec.ID + "/" + f
		}
	}
	return resp
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req alignRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	scoring, err := req.scoring(s.scoring)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := pipeline.Options{
		Left:        req.Left,
		Top:         req.Top,
		LeftName:    req.LeftName,
		TopName:     req.TopName,
		Scoring:     scoring,
		Workers:     req.Workers,
		ShorterLeft: req.ShorterLeft,
		Formats:     []string{pipeline.FormatJSON},
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, _, hit, err := s.runner.AlignWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(s.runner.Keyer.AlignmentKey(opts.AlignmentKeyOpts()), opts.LeftName, opts.TopName, doc)
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeStorage, err, "save alignment"))
		return
	}

	resp := summarize(rec, true)
	resp.Cached = hit
	w.Header().Set("Location", "/api/v1/alignments/"+rec.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	recs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeStorage, err, "list alignments"))
		return
	}
	out := make([]alignmentResponse, len(recs))
	for i, rec := range recs {
		out[i] = summarize(rec, false)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := errs.ValidateFormat(format, pipeline.SupportedFormats); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := rec.Document.Matrix()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		LeftName: rec.LeftName,
		TopName:  rec.TopName,
		Scoring:  rec.Document.Scoring,
		Formats:  []string{format},
		Detailed: r.URL.Query().Get("detailed") == "true",
	}
	artifacts, _, err := s.runner.RenderWithCacheInfo(r.Context(), rec.Key, rec.Document, m, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}
