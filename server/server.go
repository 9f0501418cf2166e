// Copyright 2026 The Placebook Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes one interactive session over a local REST
// API, for frontends that prefer HTTP over the bundled CLI.
package server

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/avelardi/placebook/directions"
	"github.com/avelardi/placebook/places"
)

// Server owns a single session. It is meant to be bound to localhost:
// one user, one catalog, no auth. The session itself is single-actor;
// gin runs handlers concurrently, so every access goes through mu.
type Server struct {
	mu       sync.Mutex
	session  *places.Session
	resolver *places.Resolver
	driving  *directions.Client
}

// New creates a server around an existing session. driving may be nil
// when no Directions access is configured; the drivetime endpoint then
// reports 503.
func New(session *places.Session, resolver *places.Resolver, driving *directions.Client) *Server {
	return &Server{
		session:  session,
		resolver: resolver,
		driving:  driving,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	s.register(r)

	return r
}

func (s *Server) register(r *gin.Engine) {
	r.GET("/api/places/resolve", s.resolve)
	r.GET("/api/catalog", s.listCatalog)
	r.POST("/api/catalog", s.submit)
	r.POST("/api/catalog/bulk", s.submitBulk)
	r.POST("/api/catalog/choose", s.choose)
	// Not under /api/catalog: a literal "pending" segment would clash
	// with the :index wildcard in gin's routing tree.
	r.DELETE("/api/pending/:query", s.dismiss)
	r.PUT("/api/catalog/:index", s.revise)
	r.DELETE("/api/catalog/:index", s.remove)
	r.DELETE("/api/catalog", s.clear)
	r.POST("/api/drivetime", s.drivetime)
}

// Run serves on the given address until the listener fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) resolve(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "q query parameter is required"})

		return
	}

	outcome, err := s.resolver.Resolve(ctx.Request.Context(), query)
	if err != nil {
		status := statusForError(err)
		ctx.JSON(status, gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, outcome)
}

type submitRequest struct {
	Query string `json:"query" binding:"required"`
}

func (s *Server) submit(ctx *gin.Context) {
	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	s.mu.Lock()
	result, err := s.session.Submit(ctx.Request.Context(), req.Query)
	s.mu.Unlock()

	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, result)
}

type bulkRequest struct {
	Text string `json:"text" binding:"required"`
}

type bulkItem struct {
	Query  string               `json:"query"`
	Result *places.SubmitResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

// submitBulk takes free text, one query per line, and submits each in
// order. Failures are reported per line; the batch never aborts.
func (s *Server) submitBulk(ctx *gin.Context) {
	var req bulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	queries := places.SplitQueries(req.Text)
	if len(queries) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no queries in text"})

		return
	}

	items := make([]bulkItem, 0, len(queries))

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, query := range queries {
		item := bulkItem{Query: query}

		result, err := s.session.Submit(ctx.Request.Context(), query)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Result = result
		}

		items = append(items, item)
	}

	ctx.JSON(http.StatusOK, gin.H{"items": items})
}

type chooseRequest struct {
	Query string `json:"query" binding:"required"`
	Index *int   `json:"index" binding:"required"`
}

func (s *Server) choose(ctx *gin.Context) {
	var req chooseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	s.mu.Lock()
	result, err := s.session.Choose(ctx.Request.Context(), req.Query, *req.Index)
	s.mu.Unlock()

	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, result)
}

// dismiss drops a parked disambiguation without confirming anything,
// so abandoned queries don't linger in the pending list.
func (s *Server) dismiss(ctx *gin.Context) {
	query := ctx.Param("query")

	s.mu.Lock()
	_, ok := s.session.Pending(query)
	s.session.Dismiss(query)
	s.mu.Unlock()

	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no pending disambiguation for query"})

		return
	}

	ctx.Status(http.StatusNoContent)
}

func (s *Server) listCatalog(ctx *gin.Context) {
	s.mu.Lock()
	entries := s.session.Entries()
	pending := s.session.PendingQueries()
	s.mu.Unlock()

	ctx.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"pending": pending,
	})
}

type reviseRequest struct {
	CandidateIndex *int `json:"candidate_index" binding:"required"`
}

func (s *Server) revise(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})

		return
	}

	var req reviseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	s.mu.Lock()
	entry, err := s.session.Revise(ctx.Request.Context(), index, *req.CandidateIndex)
	s.mu.Unlock()

	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})

		return
	}

	ctx.JSON(http.StatusOK, entry)
}

func (s *Server) remove(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})

		return
	}

	s.mu.Lock()
	err = s.session.Remove(index)
	s.mu.Unlock()

	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})

		return
	}

	ctx.Status(http.StatusNoContent)
}

func (s *Server) clear(ctx *gin.Context) {
	s.mu.Lock()
	s.session.Clear()
	s.mu.Unlock()

	ctx.Status(http.StatusNoContent)
}

func (s *Server) drivetime(ctx *gin.Context) {
	if s.driving == nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "directions client not configured"})

		return
	}

	var plan directions.Plan
	if err := ctx.ShouldBindJSON(&plan); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if len(plan.Origins) == 0 || len(plan.Destinations) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "origins and destinations are required"})

		return
	}

	legs := plan.Compute(ctx.Request.Context(), s.driving)

	ctx.JSON(http.StatusOK, gin.H{"legs": legs})
}

// statusForError maps domain errors to HTTP statuses: caller misuse is
// 4xx, provider trouble is 502, everything else 500.
func statusForError(err error) int {
	var indexErr *places.IndexError
	if errors.As(err, &indexErr) {
		return http.StatusBadRequest
	}

	if errors.Is(err, places.ErrNoPending) || errors.Is(err, places.ErrDuplicate) {
		return http.StatusConflict
	}

	var rerr *places.ResolveError
	if errors.As(err, &rerr) {
		switch rerr.Kind {
		case places.ErrorKindInvalidRequest:
			return http.StatusBadRequest
		case places.ErrorKindNotFound:
			return http.StatusNotFound
		default:
			return http.StatusBadGateway
		}
	}

	return http.StatusInternalServerError
}
