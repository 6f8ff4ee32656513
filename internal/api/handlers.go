package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cris-achiardi/figma-plugins-sub000/pkg/cache"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/errors"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/host"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/observability"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/rebuild"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/render"
	"github.com/cris-achiardi/figma-plugins-sub000/pkg/snapshot"
)

// maxSnapshotBytes bounds the request body. Snapshots are JSON trees, not
// binary assets, so 20 MiB is generous.
const maxSnapshotBytes = 20 << 20

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// handleRebuild runs the engine against a fresh in-memory host and returns
// the reconstruction report. Identical snapshot-plus-options requests are
// answered from the report cache.
//
// POST /v1/rebuild?rootLabel=...
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes+1))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read request body"))
		return
	}
	if len(body) > maxSnapshotBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			errors.New(errors.ErrCodeInvalidFormat, "snapshot exceeds %d bytes", maxSnapshotBytes))
		return
	}

	snap, err := snapshot.Parse(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	rootLabel := r.URL.Query().Get("rootLabel")
	key := s.keyer.ReportKey(cache.Hash(body), cache.ReportKeyOpts{
		RootLabel:      rootLabel,
		FallbackFamily: rebuild.DefaultFallbackFont.Family,
		FallbackStyle:  rebuild.DefaultFallbackFont.Style,
		YieldEvery:     rebuild.DefaultYieldEvery,
	})

	if cached, ok, _ := s.cache.Get(r.Context(), key); ok {
		observability.Cache().OnCacheHit(r.Context(), "report")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "hit")
		w.Write(cached)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "report")

	mem := host.NewMemory(host.MemoryConfig{})
	res, err := rebuild.Rebuild(r.Context(), mem.Env(), snap, rebuild.Options{
		RootLabel: rootLabel,
		Logger:    s.logger,
	})
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	payload, err := json.Marshal(res)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "encode report"))
		return
	}

	if err := s.cache.Set(r.Context(), key, payload, cache.TTLReport); err != nil {
		s.logger.Warn("report cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "report", len(payload))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "miss")
	w.Write(payload)
}

// handleInspect renders the snapshot tree as a diagram without rebuilding
// it.
//
// POST /v1/inspect?format=dot|svg|png
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot.Parse(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		s.writeError(w, statusForError(err), err)
		return
	}

	detailed := r.URL.Query().Get("detailed") == "true"
	dot := render.ToDOT(snap, render.Options{Detailed: detailed})

	switch format := r.URL.Query().Get("format"); format {
	case "", "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write([]byte(dot))
	case "svg":
		svg, err := render.ToSVG(r.Context(), dot)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(svg)
	case "png":
		png, err := render.ToPNG(r.Context(), dot)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, errors.Wrap(errors.ErrCodeInternal, err, "render png"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	default:
		s.writeError(w, http.StatusBadRequest,
			errors.New(errors.ErrCodeInvalidOptions, "unknown format %q", format))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Debug("request failed", "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// statusForError maps error codes to HTTP status codes.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidOptions:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidSnapshot:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeNodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
