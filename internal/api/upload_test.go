package api

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestClient_Upload(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "cover.png")
	payload := make([]byte, 64*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}
	if err := os.WriteFile(filePath, payload, 0644); err != nil {
		t.Fatal(err)
	}

	f, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/communication/upload" || r.Method != http.MethodPost {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Failed to parse multipart form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("Missing file field: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "cover.png" {
			t.Errorf("Expected filename cover.png, got %s", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if len(data) != len(payload) {
			t.Errorf("Expected %d bytes, got %d", len(payload), len(data))
		}
		w.Write([]byte(`{"uploaded":["/uploads/cover-1.png"]}`))
	}))

	var mu sync.Mutex
	var last float64
	urls, err := f.client.Upload(context.Background(), filePath, func(percent float64) {
		mu.Lock()
		if percent < last {
			t.Errorf("Progress went backwards: %f after %f", percent, last)
		}
		last = percent
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if len(urls) != 1 || urls[0] != "/uploads/cover-1.png" {
		t.Errorf("Unexpected uploaded URLs %v", urls)
	}

	mu.Lock()
	if last < 99.9 {
		t.Errorf("Expected progress to reach 100, got %f", last)
	}
	mu.Unlock()
}

func TestClient_UploadTracksBusy(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "cover.png")
	if err := os.WriteFile(filePath, []byte("payload"), 0644); err != nil {
		t.Fatal(err)
	}

	var busyDuring bool
	var f *fixture
	f, _ = newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		busyDuring = f.center.Busy()
		w.Write([]byte(`{"uploaded":["/uploads/cover-1.png"]}`))
	}))

	if _, err := f.client.Upload(context.Background(), filePath, nil); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if !busyDuring {
		t.Error("Expected busy indicator up while the upload is in flight")
	}
	if f.center.Busy() {
		t.Error("Expected busy indicator released after the upload")
	}
}

func TestClient_Upload_FailureNotifiesOnce(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "note.txt")
	if err := os.WriteFile(filePath, []byte("hi"), 0644); err != nil {
		t.Fatal(err)
	}

	f, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"writeError","code":"server_error"}`))
	}))

	if _, err := f.client.Upload(context.Background(), filePath, nil); err == nil {
		t.Fatal("Expected upload error")
	}
	if got := len(f.center.Toasts()); got != 1 {
		t.Errorf("Expected exactly one error toast, got %d", got)
	}
}
