package asset

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func uploadRequest(t *testing.T, contentType string, payload []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="shot.png"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatal(err)
	}
	part.Write(payload)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/assets/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func tinyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestUploadStoresImage(t *testing.T) {
	dir := t.TempDir()
	h := NewHandler(dir)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "image/png", tinyPNG(t, 3, 2)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(resp.ID, "asset_") {
		t.Errorf("id = %q", resp.ID)
	}
	if resp.Width != 3 || resp.Height != 2 {
		t.Errorf("size = %dx%d, want 3x2", resp.Width, resp.Height)
	}
	if resp.URL != "/assets/"+resp.ID+".png" {
		t.Errorf("url = %q", resp.URL)
	}
	if _, err := os.Stat(filepath.Join(dir, resp.ID+".png")); err != nil {
		t.Errorf("stored file missing: %v", err)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	h := NewHandler(t.TempDir())

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "text/plain", []byte("not an image")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("wrong content type: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "image/png", []byte("garbage bytes")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("undecodable payload: status = %d", rec.Code)
	}
}

func TestServeSetsImmutableCache(t *testing.T) {
	dir := t.TempDir()
	h := NewHandler(dir)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "image/png", tinyPNG(t, 1, 1)))
	var resp UploadResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)

	rec = httptest.NewRecorder()
	h.Serve().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("serve status = %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "immutable") {
		t.Errorf("cache control = %q", cc)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	h := NewHandler(dir)

	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, "image/png", tinyPNG(t, 1, 1)))
	var resp UploadResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)

	r := mux.NewRouter()
	r.HandleFunc("/assets/{assetId}", h.Delete).Methods("DELETE")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/assets/"+resp.ID, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/assets/"+resp.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
}
