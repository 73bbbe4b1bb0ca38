package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/rubric/format"
	"github.com/tsawler/rubric/model"
)

type outlineResponse struct {
	Document string        `json:"document"`
	Headings int           `json:"headings"`
	Outline  model.Outline `json:"outline"`
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	name, data, err := readDocument(r)
	if err != nil {
		documentsProcessed.WithLabelValues("rejected").Inc()
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			jsonError(w, fmt.Sprintf("document exceeds max size (%d bytes)", s.maxUpload), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if format.DetectFromMagic(data) != format.PDF {
		documentsProcessed.WithLabelValues("rejected").Inc()
		jsonError(w, fmt.Sprintf("%s is not a PDF", name), http.StatusBadRequest)
		return
	}

	start := time.Now()
	ol, err := s.processUpload(r.Context(), name, data)
	processingSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		documentsProcessed.WithLabelValues("failed").Inc()
		s.log.Warn("document processing failed", zap.String("document", name), zap.Error(err))
		jsonError(w, fmt.Sprintf("unable to process %s: not a readable PDF", name), http.StatusUnprocessableEntity)
		return
	}

	documentsProcessed.WithLabelValues("ok").Inc()
	headingsEmitted.Add(float64(len(ol)))

	if ol == nil {
		ol = model.Outline{}
	}
	writeJSON(w, http.StatusOK, outlineResponse{
		Document: name,
		Headings: len(ol),
		Outline:  ol,
	})
}

// readDocument pulls the PDF bytes out of a multipart form or a raw body.
func readDocument(r *http.Request) (string, []byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return "", nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("document")
		if err != nil {
			return "", nil, errors.New(`form field "document" is required`)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("read upload: %w", err)
		}
		return sanitizeFilename(header.Filename), data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) == 0 {
		return "", nil, errors.New("empty request body")
	}
	return "upload.pdf", data, nil
}

// processUpload spools the upload to a temp file and runs the extractor
// against it.
func (s *Server) processUpload(ctx context.Context, name string, data []byte) (model.Outline, error) {
	tmp, err := os.CreateTemp("", "rubric-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}

	return s.extract(ctx, tmp.Name(), name)
}

// sanitizeFilename strips path components from a client-supplied name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		return "upload.pdf"
	}
	return name
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
