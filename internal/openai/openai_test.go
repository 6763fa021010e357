package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/stickerkit/internal/providers"
)

func TestGenerateImage(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")
	image := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header %q", got)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if body["prompt"] != "a sticker sheet" || body["model"] != "gpt-image-1" {
			t.Errorf("Unexpected request body %v", body)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(image)}},
		})
	}))
	defer server.Close()

	o := New()
	o.BaseURL = server.URL

	got, err := o.GenerateImage(context.Background(), providers.Config{Model: "gpt-image-1", Prompt: "a sticker sheet"})
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}
	if !bytes.Equal(got, image) {
		t.Errorf("Expected %v, got %v", image, got)
	}
}

func TestGenerateImageErrors(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-key")

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "bad status", status: http.StatusBadRequest, body: `{"error":"nope"}`, wantErr: "400"},
		{name: "no data", status: http.StatusOK, body: `{"data":[]}`, wantErr: "no image"},
		{name: "bad base64", status: http.StatusOK, body: `{"data":[{"b64_json":"***"}]}`, wantErr: "decode image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			o := New()
			o.BaseURL = server.URL
			_, err := o.GenerateImage(context.Background(), providers.Config{Prompt: "x"})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGenerateImageRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New().GenerateImage(context.Background(), providers.Config{Prompt: "x"}); err == nil {
		t.Error("Expected missing API key error")
	}
}
