package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kostyay/basementhq/internal/config"
	hqerrors "github.com/kostyay/basementhq/internal/errors"
	"github.com/kostyay/basementhq/internal/output"
	"github.com/kostyay/basementhq/internal/theme"
)

const maxUpload = 32 << 20

type saveResponse struct {
	Saved []string `json:"saved"`
}

type uploadResponse struct {
	Kind theme.AssetKind `json:"kind"`
	Path string          `json:"path"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	params := s.board.Theme()
	writeJSON(w, http.StatusOK, output.NewStatus(s.board.Latest(), params.Title, params.ThemeName, s.now()))
}

func (s *Server) theme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Theme())
}

func (s *Server) stylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	_, _ = w.Write([]byte(s.board.Theme().Stylesheet()))
}

func (s *Server) listConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, output.MaskEntries(s.board.Entries()))
}

// saveConfig accepts either a JSON object of key/value strings or a form.
// Entries are applied in key order.
func (s *Server) saveConfig(w http.ResponseWriter, r *http.Request) {
	values := map[string]string{}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&values); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", "Send a JSON object of string values")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form", "")
			return
		}
		for k, v := range r.PostForm {
			if len(v) > 0 {
				values[k] = v[len(v)-1]
			}
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]config.Entry, 0, len(keys))
	for _, k := range keys {
		if err := config.ValidateEntry(k, values[k]); err != nil {
			writeStructured(w, http.StatusBadRequest, err)
			return
		}
		entries = append(entries, config.Entry{Key: k, Value: values[k]})
	}

	saved, err := s.board.SaveConfig(entries)
	if err != nil {
		s.logger.Error("config write failed", zap.Strings("saved", saved), zap.Error(err))
		writeStructured(w, http.StatusInternalServerError, err)
		s.onFatal(err)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Saved: saved})
}

func (s *Server) uploadAsset(w http.ResponseWriter, r *http.Request) {
	kind, err := theme.ParseAssetKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeStructured(w, http.StatusNotFound, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload", "Send multipart/form-data with a 'file' field")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field", "Send multipart/form-data with a 'file' field")
		return
	}
	defer file.Close()

	path, err := s.board.SaveAsset(kind, header.Filename, file)
	if err != nil {
		code := http.StatusInternalServerError
		var he *hqerrors.Error
		if hqerrors.IsCode(err, hqerrors.ErrAsset) && errors.As(err, &he) && he.Cause == nil {
			code = http.StatusBadRequest
		}
		writeStructured(w, code, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{Kind: kind, Path: path})
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	kind, err := theme.ParseAssetKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeStructured(w, http.StatusNotFound, err)
		return
	}
	assets := s.board.Assets()
	var path string
	switch kind {
	case theme.AssetLogo:
		path = assets.LogoPath()
	case theme.AssetBackground:
		path = assets.BackgroundPath()
	case theme.AssetFont:
		path = assets.FontPath()
	}
	if path == "" {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg, suggestion string) {
	writeJSON(w, code, errorResponse{Error: msg, Suggestion: suggestion})
}

// writeStructured reports err, using the message and suggestion of a
// structured error when there is one.
func writeStructured(w http.ResponseWriter, code int, err error) {
	var he *hqerrors.Error
	if errors.As(err, &he) {
		writeError(w, code, he.Message, he.Suggestion)
		return
	}
	writeError(w, code, err.Error(), "")
}
