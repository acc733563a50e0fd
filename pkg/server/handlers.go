package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/treeview/pkg/buildinfo"
	"github.com/matzehuels/treeview/pkg/errors"
	"github.com/matzehuels/treeview/pkg/pipeline"
	"github.com/matzehuels/treeview/pkg/store"
)

// Response headers describing a pipeline run.
const (
	HeaderFormat = "X-Treeview-Format"
	HeaderCache  = "X-Treeview-Cache"
)

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// =============================================================================
// Stateless pipeline
// =============================================================================

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	source, err := s.readSource(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Outputs = []string{pipeline.OutputJSON}
	s.execute(w, r, source, opts)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	source, err := s.readSource(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.execute(w, r, source, opts)
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, source string, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), source, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	output := opts.Outputs[0]
	w.Header().Set(HeaderFormat, result.Format.String())
	if result.CacheInfo.ParseHit && result.CacheInfo.RenderHit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[output])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[output])
}

// readSource reads the request body as tree source.
func (s *Server) readSource(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) == 0 {
		return "", errInvalid("request body is empty")
	}
	return string(body), nil
}

// optionsFromQuery reads format, output, collapsed, detailed, horizontal,
// title and ignore from the query string. Output defaults to html.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format: q.Get("format"),
		Title:  q.Get("title"),
		Ignore: splitList(q.Get("ignore")),
	}

	output := q.Get("output")
	if output == "" {
		output = pipeline.DefaultOutput
	}
	if err := pipeline.ValidateOutput(output); err != nil {
		return opts, err
	}
	opts.Outputs = []string{output}

	for name, dst := range map[string]*bool{
		"collapsed":  &opts.Collapsed,
		"detailed":   &opts.Detailed,
		"horizontal": &opts.Horizontal,
		"refresh":    &opts.Refresh,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errInvalid("query parameter %s must be a boolean, got %q", name, v)
		}
		*dst = b
	}
	return opts, nil
}

// =============================================================================
// Stored trees
// =============================================================================

type createTreeRequest struct {
	Title  string `json:"title"`
	Format string `json:"format"`
	Source string `json:"source"`
}

func (s *Server) handleCreateTree(w http.ResponseWriter, r *http.Request) {
	var req createTreeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	doc := &store.Document{Title: req.Title, Format: req.Format, Source: req.Source}
	// Reject sources that do not parse before storing them.
	if err := doc.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := doc.Parse(); err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.store.Create(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/trees/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTrees(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*store.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	doc, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderTree(w http.ResponseWriter, r *http.Request) {
	doc, err := s.lookup(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Format = doc.Format
	if opts.Title == "" {
		opts.Title = doc.Title
	}
	s.execute(w, r, doc.Source, opts)
}

func (s *Server) lookup(r *http.Request) (*store.Document, error) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errNotFound("tree %s not found", id)
	}
	return doc, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
