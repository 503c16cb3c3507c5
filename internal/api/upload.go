package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
)

// ProgressFunc receives fractional upload progress in percent (0–100).
// Callbacks are advisory: they run on the transfer goroutine and carry no
// backpressure.
type ProgressFunc func(percent float64)

// Upload sends a local file to /communication/upload as multipart form data
// and returns the URLs the backend stored it under. onProgress may be nil.
func (c *Client) Upload(ctx context.Context, filePath string, onProgress ProgressFunc) ([]string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload file: %w", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	body := &progressReader{
		reader:     bytes.NewReader(buf.Bytes()),
		total:      int64(buf.Len()),
		onProgress: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/communication/upload", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.ContentLength = body.total

	raw, err := c.do(req, http.MethodPost, "/communication/upload")
	if err != nil {
		return nil, err
	}

	var result struct {
		Uploaded []string `json:"uploaded"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return result.Uploaded, nil
}

// progressReader reports cumulative read progress as a percentage.
type progressReader struct {
	reader     *bytes.Reader
	total      int64
	read       atomic.Int64
	onProgress ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 && r.onProgress != nil && r.total > 0 {
		read := r.read.Add(int64(n))
		r.onProgress(float64(read) / float64(r.total) * 100)
	}
	if err == io.EOF && r.onProgress != nil && r.total == 0 {
		r.onProgress(100)
	}
	return n, err
}
