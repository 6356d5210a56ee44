// Package api exposes the merge engine over HTTP.
//
// The server is the network analog of the CLI merge commands: clients
// upload files as multipart form data together with the merge options and
// receive the merged artifact back in the response body. Errors are
// returned as JSON envelopes carrying the same machine-readable codes the
// rest of the application uses.
//
// # Endpoints
//
//	GET  /healthz          liveness probe
//	GET  /version          build information
//	POST /v1/merge/images  multipart files + options -> encoded image
//	POST /v1/merge/text    multipart files + options -> merged document
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/filemerge/filemerge/pkg/pipeline"
)

// maxUploadMemory bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// Server handles merge requests against a shared pipeline runner.
type Server struct {
	logger *log.Logger
	runner *pipeline.Runner
}

// NewServer creates a server around the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Router builds the HTTP handler with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/merge/images", s.handleMergeImages)
		r.Post("/merge/text", s.handleMergeText)
	})

	return r
}
