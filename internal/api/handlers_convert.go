package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/dgallion1/docstruct/internal/analysis"
	"github.com/dgallion1/docstruct/internal/codec"
	"github.com/dgallion1/docstruct/internal/tokenize"
)

// handleConvert converts an upload synchronously and returns the tree.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	format, err := outputFormat(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, _, err := s.orchestrator.Converter().Convert(r.Context(), up.data, up.filename, r.FormValue("title"), r.FormValue("language"))
	if err != nil {
		s.log.Warn("conversion failed", "filename", up.filename, "error", err)
		jsonError(w, "conversion failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.writeDocument(w, res.Document, format)
}

// handleAnalyze converts an upload and returns the analysis report as JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	lang := r.FormValue("language")

	res, _, err := s.orchestrator.Converter().Convert(r.Context(), up.data, up.filename, r.FormValue("title"), lang)
	if err != nil {
		s.log.Warn("conversion failed", "filename", up.filename, "error", err)
		jsonError(w, "conversion failed: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	rep, err := analysis.Analyze(res.Document, s.registry, analysis.Options{Language: lang, Tokenizer: tokenize.Sentences{}})
	if errors.Is(err, analysis.ErrUnknownLanguage) {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := rep.WriteJSON(w); err != nil {
		s.log.Error("encode report", "error", err)
	}
}

// handleValidate checks a JSON tree in the request body against the schema
// and then decodes it.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		code := http.StatusBadRequest
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			code = http.StatusRequestEntityTooLarge
		}
		jsonError(w, "failed to read body: "+err.Error(), code)
		return
	}

	err = codec.ValidateJSON(bytes.NewReader(body))
	var ve *codec.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"valid":    false,
			"problems": ve.Problems,
		})
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := codec.DecodeJSON(bytes.NewReader(body))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"valid":    false,
			"problems": []codec.Problem{{Path: "/", Message: err.Error()}},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"valid":    true,
		"sections": len(doc.Sections()),
	})
}
