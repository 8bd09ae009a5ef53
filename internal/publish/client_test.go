package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"shipwright/internal/logging"
	"shipwright/internal/services"
	"shipwright/internal/testsupport"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t)
	cfg.Publish.APIBase = server.URL
	cfg.Publish.UploadBase = server.URL

	asset := filepath.Join(t.TempDir(), "install.zip")
	if err := os.WriteFile(asset, []byte("PK\x03\x04fake"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}
	return NewClient(cfg, logging.NewNop()), asset
}

func TestPublishCreatesReleaseAndUploadsAsset(t *testing.T) {
	var gotCreate, gotUpload bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/acme/fog-module/releases", func(w http.ResponseWriter, r *http.Request) {
		gotCreate = true
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode create payload: %v", err)
		}
		if payload["tag_name"] != "v1.2" {
			t.Errorf("tag_name = %v, want v1.2", payload["tag_name"])
		}
		if payload["prerelease"] != true {
			t.Errorf("prerelease = %v, want true", payload["prerelease"])
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 99, "html_url": "https://example.test/releases/v1.2"}`)
	})
	mux.HandleFunc("POST /repos/acme/fog-module/releases/99/assets", func(w http.ResponseWriter, r *http.Request) {
		gotUpload = true
		if r.URL.Query().Get("name") != "install.zip" {
			t.Errorf("asset name = %q, want install.zip", r.URL.Query().Get("name"))
		}
		if r.Header.Get("Content-Type") != "application/zip" {
			t.Errorf("content type = %q", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	})

	client, asset := newTestClient(t, mux)
	release, err := client.Publish(context.Background(), Request{Version: "v1.2", AssetPath: asset, Prerelease: true})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !gotCreate || !gotUpload {
		t.Fatalf("create=%v upload=%v, want both", gotCreate, gotUpload)
	}
	if release.HTMLURL != "https://example.test/releases/v1.2" {
		t.Fatalf("unexpected release url: %q", release.HTMLURL)
	}
}

func TestPublishSurfacesCollision(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "Validation Failed: tag_name already exists"}`)
	})
	client, asset := newTestClient(t, handler)

	_, err := client.Publish(context.Background(), Request{Version: "v1.2", AssetPath: asset})
	if !errors.Is(err, services.ErrCollision) {
		t.Fatalf("expected collision classification, got %v", err)
	}
	var collision *CollisionError
	if !errors.As(err, &collision) || collision.Tag != "v1.2" {
		t.Fatalf("expected CollisionError for v1.2, got %v", err)
	}
}

func TestPublishSurfacesUnexpectedStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	client, asset := newTestClient(t, handler)

	_, err := client.Publish(context.Background(), Request{Version: "v1.2", AssetPath: asset})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool classification, got %v", err)
	}
}

func TestPublishValidatesRequest(t *testing.T) {
	client, asset := newTestClient(t, http.NotFoundHandler())

	if _, err := client.Publish(context.Background(), Request{AssetPath: asset}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error without version, got %v", err)
	}
	if _, err := client.Publish(context.Background(), Request{Version: "v1.0"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error without asset, got %v", err)
	}
}
