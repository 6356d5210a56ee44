package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/filemerge/filemerge/pkg/buildinfo"
	"github.com/filemerge/filemerge/pkg/compose"
	"github.com/filemerge/filemerge/pkg/errors"
	"github.com/filemerge/filemerge/pkg/pipeline"
	"github.com/filemerge/filemerge/pkg/raster"
	"github.com/filemerge/filemerge/pkg/textmerge"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"built":   buildinfo.Date,
	})
}

// handleMergeImages stages the uploaded files, runs the image pipeline,
// and streams the encoded canvas back.
func (s *Server) handleMergeImages(w http.ResponseWriter, r *http.Request) {
	inputs, dir, cleanup, err := s.stageUploads(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	format := strings.ToLower(r.FormValue("format"))
	if format == "" {
		format = string(raster.FormatPNG)
	}
	for _, c := range format {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			writeError(w, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported output format %q", format))
			return
		}
	}

	opts, err := s.imageOptions(r, inputs, filepath.Join(dir, "merged."+format))
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := os.ReadFile(result.OutputPath)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "read merged output"))
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(result.Format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Canvas-Width", strconv.Itoa(result.Width))
	w.Header().Set("X-Canvas-Height", strconv.Itoa(result.Height))
	w.Header().Set("X-Assets-Loaded", strconv.Itoa(result.Stats.LoadedCount))
	w.Header().Set("X-Assets-Skipped", strconv.Itoa(result.Stats.SkippedCount))
	_, _ = w.Write(data)
}

// handleMergeText stages the uploaded files and returns the merged
// document as plain text or markdown.
func (s *Server) handleMergeText(w http.ResponseWriter, r *http.Request) {
	inputs, _, cleanup, err := s.stageUploads(r)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cleanup()

	opts := textmerge.Options{Inputs: inputs, Logger: s.logger}
	if v := r.FormValue("separator"); v != "" {
		if opts.Separator, err = textmerge.ParseSeparator(v); err != nil {
			writeError(w, err)
			return
		}
	}
	if opts.LineNumbers, err = formBool(r, "line_numbers"); err != nil {
		writeError(w, err)
		return
	}
	if opts.Timestamps, err = formBool(r, "timestamps"); err != nil {
		writeError(w, err)
		return
	}
	if opts.StripWhitespace, err = formBool(r, "strip_whitespace"); err != nil {
		writeError(w, err)
		return
	}
	if opts.Markdown, err = formBool(r, "markdown"); err != nil {
		writeError(w, err)
		return
	}

	result, err := textmerge.Merge(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if opts.Markdown {
		contentType = "text/markdown; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Files-Merged", strconv.Itoa(result.Totals.Files))
	w.Header().Set("X-Files-Skipped", strconv.Itoa(result.Skipped()))
	_, _ = io.WriteString(w, result.Content)
}

// imageOptions builds pipeline options from the request form.
func (s *Server) imageOptions(r *http.Request, inputs []string, output string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Inputs:  inputs,
		Output:  output,
		Spacing: pipeline.DefaultSpacing,
		Logger:  s.logger,
	}

	var err error
	if v := r.FormValue("layout"); v != "" {
		if opts.Layout, err = compose.ParseLayout(v); err != nil {
			return opts, err
		}
	}
	if opts.Columns, err = formInt(r, "columns"); err != nil {
		return opts, err
	}
	if v := r.FormValue("spacing"); v != "" {
		if opts.Spacing, err = formInt(r, "spacing"); err != nil {
			return opts, err
		}
	}
	if v := r.FormValue("resize"); v != "" {
		if opts.Resize, err = compose.ParseResizeMode(v); err != nil {
			return opts, err
		}
	}
	if opts.Width, err = formInt(r, "width"); err != nil {
		return opts, err
	}
	if opts.Height, err = formInt(r, "height"); err != nil {
		return opts, err
	}
	if v := r.FormValue("filter"); v != "" {
		if opts.Filter, err = compose.ParseFilter(v); err != nil {
			return opts, err
		}
	}
	opts.Watermark = r.FormValue("watermark")
	opts.Background = r.FormValue("background")
	if opts.Refresh, err = formBool(r, "refresh"); err != nil {
		return opts, err
	}

	return opts, nil
}

// stageUploads parses the multipart form and copies every uploaded file
// into a fresh staging directory, preserving the client's file names. The
// returned cleanup removes the staging directory and the form's temp
// files; on error nothing is left behind.
func (s *Server) stageUploads(r *http.Request) ([]string, string, func(), error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, "", nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse multipart form")
	}

	dir, err := os.MkdirTemp("", "filemerge-api-*")
	if err != nil {
		return nil, "", nil, errors.Wrap(errors.ErrCodeInternal, err, "create staging dir")
	}
	cleanup := func() {
		_ = os.RemoveAll(dir)
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		cleanup()
		return nil, "", nil, errors.New(errors.ErrCodeEmptyInput, `no files uploaded (use the "files" multipart field)`)
	}

	paths := make([]string, 0, len(files))
	for i, fh := range files {
		dst := filepath.Join(dir, strconv.Itoa(i), sanitizeName(fh.Filename, i))
		if err := copyUpload(fh, dst); err != nil {
			cleanup()
			return nil, "", nil, err
		}
		paths = append(paths, dst)
	}

	return paths, dir, cleanup, nil
}

func copyUpload(fh *multipart.FileHeader, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "stage upload")
	}

	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "open upload %s", fh.Filename)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "stage upload %s", fh.Filename)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "stage upload %s", fh.Filename)
	}
	return nil
}

// sanitizeName reduces a client-supplied file name to a safe base name.
func sanitizeName(name string, i int) string {
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return fmt.Sprintf("file%d", i)
	}
	return name
}

func formInt(r *http.Request, key string) (int, error) {
	v := r.FormValue(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "%s: %q is not a number", key, v)
	}
	return n, nil
}

func formBool(r *http.Request, key string) (bool, error) {
	v := r.FormValue(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidConfig, "%s: %q is not a boolean", key, v)
	}
	return b, nil
}

// contentTypeFor maps an output format to its MIME type.
func contentTypeFor(f raster.Format) string {
	switch f {
	case raster.FormatPNG:
		return "image/png"
	case raster.FormatJPEG:
		return "image/jpeg"
	case raster.FormatGIF:
		return "image/gif"
	case raster.FormatBMP:
		return "image/bmp"
	case raster.FormatTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
