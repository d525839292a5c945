package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	hserrors "github.com/oadl/heatsheet/pkg/errors"
	"github.com/oadl/heatsheet/pkg/host"
	"github.com/oadl/heatsheet/pkg/pipeline"
	"github.com/oadl/heatsheet/pkg/render"
	"github.com/oadl/heatsheet/pkg/render/sink"
	"github.com/oadl/heatsheet/pkg/store"
)

// maxPayloadBytes caps request bodies on the draw and sheet routes.
const maxPayloadBytes = 8 << 20

// drawResponse reports the outcome of a dispatched draw.
type drawResponse struct {
	State      string `json:"state"`
	Message    string `json:"message,omitempty"`
	Generation uint64 `json:"generation"`
}

// sheetSummary is the list representation of a saved sheet, without
// the payload body.
type sheetSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDraw is the data-ready event over HTTP: the body is a payload,
// the draw runs synchronously, and the response reports the mounted
// state. Malformed payloads still complete the draw with an error tree.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		s.apiError(w, hserrors.Wrap(hserrors.ErrCodeInvalidPayload, err, "read request body"))
		return
	}
	s.dispatch(w, r, raw)
}

func (s *Server) handleTree(w http.ResponseWriter, _ *http.Request) {
	tree := s.mountedTree()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(sink.RenderJSON(tree, sink.WithIndent()))
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	_, artifact, ok := s.container.Snapshot()
	if !ok {
		artifact = sink.RenderHTML(render.Build(nil), sink.WithDocument(s.opts.Title))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func (s *Server) handleSaveSheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string          `json:"name"`
		Payload json.RawMessage `json:"payload"`
	}
	body := io.LimitReader(r.Body, maxPayloadBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.apiError(w, hserrors.Wrap(hserrors.ErrCodeInvalidPayload, err, "decode request"))
		return
	}
	if req.Name == "" {
		s.apiError(w, hserrors.New(hserrors.ErrCodeInvalidInput, "sheet name is required"))
		return
	}
	if _, err := host.DecodePayload(req.Payload); err != nil {
		s.apiError(w, hserrors.Wrap(hserrors.ErrCodeInvalidPayload, err, "decode sheet payload"))
		return
	}

	sheet := store.New(req.Name, req.Payload)
	if err := s.sheets.Save(r.Context(), sheet); err != nil {
		s.apiError(w, hserrors.Wrap(hserrors.ErrCodeStorage, err, "save sheet"))
		return
	}
	s.logger.Info("sheet saved", "id", sheet.ID, "name", sheet.Name)
	writeJSON(w, http.StatusCreated, sheet)
}

func (s *Server) handleListSheets(w http.ResponseWriter, r *http.Request) {
	sheets, err := s.sheets.List(r.Context())
	if err != nil {
		s.apiError(w, hserrors.Wrap(hserrors.ErrCodeStorage, err, "list sheets"))
		return
	}
	summaries := make([]sheetSummary, 0, len(sheets))
	for _, sh := range sheets {
		summaries = append(summaries, sheetSummary{
			ID:        sh.ID,
			Name:      sh.Name,
			CreatedAt: sh.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.sheets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.apiError(w, sheetError(err))
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) handleDeleteSheet(w http.ResponseWriter, r *http.Request) {
	if err := s.sheets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.apiError(w, sheetError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReplaySheet re-dispatches a saved sheet's payload as a fresh
// data-ready event.
func (s *Server) handleReplaySheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.sheets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.apiError(w, sheetError(err))
		return
	}
	s.dispatch(w, r, sheet.Payload)
}

// dispatch publishes raw payload bytes as a data-ready event and
// reports the resulting container state. Publish runs the subscribed
// presenter synchronously, so the container is current once it returns.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, raw []byte) {
	payload, err := host.DecodePayload(raw)
	if err != nil {
		// Decode failures still end in a mounted error state carrying
		// the failure text.
		tree := render.Error(err)
		s.container.Mount(tree, pipeline.RenderTree(tree, pipeline.FormatHTML, s.opts))
	} else {
		s.bus.Publish(r.Context(), payload)
	}

	tree := s.mountedTree()
	writeJSON(w, http.StatusOK, drawResponse{
		State:      string(tree.State),
		Message:    tree.Message,
		Generation: s.container.Generation(),
	})
}

// mountedTree returns the currently mounted tree, or the empty-state
// tree when nothing has been drawn yet.
func (s *Server) mountedTree() *render.Tree {
	if tree, _, ok := s.container.Snapshot(); ok {
		return tree
	}
	return render.Build(nil)
}

func sheetError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return hserrors.Wrap(hserrors.ErrCodeSheetNotFound, err, "sheet not found")
	}
	return hserrors.Wrap(hserrors.ErrCodeStorage, err, "sheet store")
}

func (s *Server) apiError(w http.ResponseWriter, err error) {
	code := hserrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case hserrors.ErrCodeInvalidInput, hserrors.ErrCodeInvalidPayload,
		hserrors.ErrCodeInvalidFormat, hserrors.ErrCodeInvalidStyle:
		status = http.StatusBadRequest
	case hserrors.ErrCodeNotFound, hserrors.ErrCodeSheetNotFound, hserrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	s.logger.Error("request failed", "code", code, "err", err)
	writeJSON(w, status, map[string]string{
		"code":  string(code),
		"error": hserrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
