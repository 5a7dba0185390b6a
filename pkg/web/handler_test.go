package web

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"promptframe/pkg/gallery"
)

type fakePipeline struct {
	path string
	err  error

	gotDescription string
	gotFilename    string
}

func (p *fakePipeline) Generate(_ context.Context, description string, filename string) (string, error) {
	p.gotDescription = description
	p.gotFilename = filename
	if p.err != nil {
		return "", p.err
	}
	return p.path, nil
}

func newTestHandler(t *testing.T, p Pipeline) (*Handler, *gallery.Store) {
	t.Helper()

	store, err := gallery.NewStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	return NewHandler(p, store, zap.NewNop()), store
}

func postJSON(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)
	return w
}

func TestGenerateEndpoint(t *testing.T) {
	p := &fakePipeline{path: "bicycle.png"}
	h, _ := newTestHandler(t, p)

	w := postJSON(t, h, `{"description":"a red bicycle","filename":"bicycle"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Path != "bicycle.png" {
		t.Errorf("path = %q", resp.Path)
	}
	if p.gotDescription != "a red bicycle" || p.gotFilename != "bicycle" {
		t.Errorf("pipeline got %q, %q", p.gotDescription, p.gotFilename)
	}
}

func TestGenerateEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing description", `{"filename":"bicycle"}`},
		{"missing filename", `{"description":"a red bicycle"}`},
		{"empty fields", `{"description":"","filename":""}`},
		{"garbage body", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, &fakePipeline{path: "x.png"})

			if w := postJSON(t, h, tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGenerateEndpointMethod(t *testing.T) {
	h, _ := newTestHandler(t, &fakePipeline{})

	req := httptest.NewRequest(http.MethodGet, "/api/generate", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

func TestGenerateEndpointPipelineFailure(t *testing.T) {
	h, _ := newTestHandler(t, &fakePipeline{err: errors.New("inference down")})

	w := postJSON(t, h, `{"description":"a red bicycle","filename":"bicycle"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
	if !strings.Contains(w.Body.String(), "inference down") {
		t.Errorf("body %q does not carry the cause", w.Body.String())
	}
}

func TestFormServed(t *testing.T) {
	h, _ := newTestHandler(t, &fakePipeline{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Generate Image") {
		t.Error("form page missing title")
	}
}

func TestImageServed(t *testing.T) {
	h, store := newTestHandler(t, &fakePipeline{})

	file, err := store.Save("bicycle", image.NewNRGBA(image.Rect(0, 0, 8, 8)))
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/images/"+file, nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
}

func TestImageMissing(t *testing.T) {
	h, _ := newTestHandler(t, &fakePipeline{})

	req := httptest.NewRequest(http.MethodGet, "/images/nope.png", nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
