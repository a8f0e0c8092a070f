package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docstruct/internal/codec"
	"github.com/dgallion1/docstruct/internal/doctree"
	"github.com/dgallion1/docstruct/internal/parser"
)

// upload is a single file taken from a multipart request.
type upload struct {
	filename string
	data     []byte
}

// parseUploadForm limits the request body to perFile bytes per expected
// file plus form overhead and parses the multipart form.
func (s *Server) parseUploadForm(w http.ResponseWriter, r *http.Request, files int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes*files+1024*1024) // extra 1MB for form overhead
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// readFileHeader checks the extension and reads at most MaxUploadBytes. It
// returns the HTTP status to answer with on failure.
func (s *Server) readFileHeader(fh *multipart.FileHeader) (upload, int, error) {
	filename := sanitizeFilename(fh.Filename)
	if !parser.IsSupportedExtension(filename) {
		return upload{filename: filename}, http.StatusBadRequest, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
	f, err := fh.Open()
	if err != nil {
		return upload{filename: filename}, http.StatusInternalServerError, errors.New("failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return upload{filename: filename}, http.StatusInternalServerError, errors.New("failed to read file")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return upload{filename: filename}, http.StatusRequestEntityTooLarge, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}
	return upload{filename: filename, data: data}, http.StatusOK, nil
}

// readUpload reads the "file" field of a single-file request. On failure the
// error response has been written.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (upload, bool) {
	if !s.parseUploadForm(w, r, 1) {
		return upload{}, false
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		jsonError(w, "file is required", http.StatusBadRequest)
		return upload{}, false
	}
	up, code, err := s.readFileHeader(files[0])
	if err != nil {
		jsonError(w, err.Error(), code)
		return upload{}, false
	}
	return up, true
}

// outputFormat reads the format parameter, defaulting to XML.
func outputFormat(r *http.Request) (string, error) {
	format := strings.ToLower(r.FormValue("format"))
	switch format {
	case "":
		return "xml", nil
	case "xml", "json":
		return format, nil
	}
	return "", fmt.Errorf("unsupported format %q (want xml or json)", format)
}

// writeDocument serializes doc in the requested format.
func (s *Server) writeDocument(w http.ResponseWriter, doc *doctree.Node, format string) {
	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		if err := codec.EncodeJSON(w, doc, false); err != nil {
			s.log.Error("encode json", "error", err)
		}
	default:
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		if err := codec.EncodeXML(w, []*doctree.Node{doc}, s.cfg.PrettyXML); err != nil {
			s.log.Error("encode xml", "error", err)
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	// Remove any path separators that might have survived.
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
