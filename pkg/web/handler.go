package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"promptframe/pkg/gallery"
)

//go:embed form.html
var formHTML []byte

type GenerateRequest struct {
	Description string `json:"description"`
	Filename    string `json:"filename"`
}

type GenerateResponse struct {
	Path string `json:"path"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Pipeline is the generation entrypoint the form submits to.
type Pipeline interface {
	Generate(ctx context.Context, description string, filename string) (string, error)
}

func NewHandler(p Pipeline, store *gallery.Store, logger *zap.Logger) *Handler {
	return &Handler{
		p:     p,
		store: store,
		log:   logger,
	}
}

// Handler bridges the HTML form to the pipeline: the form posts
// {description, filename} and gets back the stored path; images are served
// back for inline display.
type Handler struct {
	p     Pipeline
	store *gallery.Store
	log   *zap.Logger
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.form)
	mux.HandleFunc("/api/generate", h.generate)
	mux.HandleFunc("/images/", h.image)
	return mux
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(formHTML)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		reply(w, http.StatusMethodNotAllowed, errorResponse{Error: "use POST"})
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reply(w, http.StatusBadRequest, errorResponse{Error: "bad request body"})
		return
	}

	// The only validation at this boundary: both fields present.
	if req.Description == "" {
		reply(w, http.StatusBadRequest, errorResponse{Error: "description is required"})
		return
	}
	if req.Filename == "" {
		reply(w, http.StatusBadRequest, errorResponse{Error: "filename is required"})
		return
	}

	path, err := h.p.Generate(r.Context(), req.Description, req.Filename)
	if err != nil {
		h.log.With(zap.String("description", req.Description), zap.Error(err)).Info("generate failed")
		reply(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	reply(w, http.StatusOK, GenerateResponse{Path: path})
}

func (h *Handler) image(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/images/")
	if name == "" || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}

	f, err := h.store.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	defer func() {
		_ = f.Close()
	}()

	w.Header().Set("Content-Type", "image/png")
	_, _ = io.Copy(w, f)
}

func reply(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
