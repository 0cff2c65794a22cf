package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kolkov/bigo"
	"github.com/kolkov/bigo/internal/cache"
	"github.com/kolkov/bigo/internal/compare"
	"github.com/kolkov/bigo/internal/llm"
	"github.com/kolkov/bigo/internal/metrics"
	"github.com/kolkov/bigo/internal/patterns"
)

// AnalyzeRequest is the POST /v1/analyze body.
type AnalyzeRequest struct {
	// Source is pseudocode in the analyzer's dialect, or free-form
	// text when Natural is set.
	Source string `json:"source" binding:"required"`

	// Natural marks the source as natural language or foreign
	// notation to be translated by the LLM before analysis.
	Natural bool `json:"natural,omitempty"`

	// Validate requests an LLM second opinion alongside the
	// deterministic result.
	Validate bool `json:"validate,omitempty"`

	// IncludeAST adds the canonical pseudocode rendering.
	IncludeAST bool `json:"include_ast,omitempty"`
}

// AnalyzeResponse is the successful analysis payload.
type AnalyzeResponse struct {
	RequestID  string                `json:"request_id"`
	Program    bigo.Bound            `json:"program"`
	Routines   map[string]bigo.Bound `json:"routines,omitempty"`
	Findings   []bigo.Finding        `json:"findings,omitempty"`
	Warnings   []bigo.Finding        `json:"warnings,omitempty"`
	Pattern    *patterns.Match       `json:"pattern,omitempty"`
	AST        string                `json:"ast,omitempty"`
	Translated string                `json:"translated,omitempty"`
	LLM        *llm.Judgment         `json:"llm,omitempty"`
	Comparison *compare.Report       `json:"comparison,omitempty"`
	Cached     bool                  `json:"cached,omitempty"`
}

// errorResponse is the error payload for every non-2xx status.
type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	requestID := uuid.NewString()
	log := s.log.With("request_id", requestID)

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.RequestsTotal.WithLabelValues("client_error").Inc()
		c.JSON(http.StatusBadRequest, errorResponse{RequestID: requestID, Error: "invalid request body: " + err.Error()})
		return
	}
	if max := s.cfg.Analysis.MaxSourceBytes; max > 0 && len(req.Source) > max {
		metrics.RequestsTotal.WithLabelValues("client_error").Inc()
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{
			RequestID: requestID,
			Error:     fmt.Sprintf("source is %d bytes, limit is %d", len(req.Source), max),
		})
		return
	}

	// Cache lookup covers the full response shape, so the key carries
	// every request knob that can change it.
	fingerprint := cache.Fingerprint(req.Source, s.cacheSettings(req))
	if s.store != nil {
		if payload, err := s.store.Get(fingerprint); err == nil {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			metrics.RequestsTotal.WithLabelValues("ok").Inc()
			var resp AnalyzeResponse
			if err := json.Unmarshal(payload, &resp); err == nil {
				resp.RequestID = requestID
				resp.Cached = true
				c.JSON(http.StatusOK, resp)
				return
			}
			log.Warn("discarding corrupt cache entry", "error", err)
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Warn("cache lookup failed", "error", err)
		} else {
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
	}

	resp, status, err := s.analyze(c, requestID, req)
	if err != nil {
		outcome := "client_error"
		if status >= 500 {
			outcome = "server_error"
			log.Error("analysis failed", "error", err)
		}
		metrics.RequestsTotal.WithLabelValues(outcome).Inc()
		c.JSON(status, toErrorResponse(requestID, err))
		return
	}

	if s.store != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.store.Put(fingerprint, payload); err != nil {
				log.Warn("cache store failed", "error", err)
			}
		}
	}

	metrics.RequestsTotal.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, resp)
}

// analyze runs the full pipeline for one request. The returned status
// only matters when err is non-nil.
func (s *Server) analyze(c *gin.Context, requestID string, req AnalyzeRequest) (AnalyzeResponse, int, error) {
	ctx := c.Request.Context()
	resp := AnalyzeResponse{RequestID: requestID}

	source := req.Source
	if req.Natural {
		if s.llm == nil {
			return resp, http.StatusUnprocessableEntity, fmt.Errorf("natural-language input requires the LLM, which is disabled")
		}
		stop := metrics.Timer("translate")
		translated, err := s.llm.Translate(ctx, source)
		stop()
		if err != nil {
			metrics.LLMCallsTotal.WithLabelValues("error").Inc()
			return resp, http.StatusBadGateway, fmt.Errorf("translation failed: %w", err)
		}
		metrics.LLMCallsTotal.WithLabelValues("ok").Inc()
		source = translated
		resp.Translated = translated
	}

	stop := metrics.Timer("compile")
	prog, err := bigo.Compile(source, &bigo.Config{
		MaxTokens: s.cfg.Analysis.MaxTokens,
		MaxDepth:  s.cfg.Analysis.MaxDepth,
	})
	stop()
	if err != nil {
		return resp, http.StatusUnprocessableEntity, err
	}

	var (
		result   *bigo.Result
		judgment *llm.Judgment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer metrics.Timer("analyze")()
		r, err := prog.Analyze(gctx)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if req.Validate && s.llm != nil {
		g.Go(func() error {
			defer metrics.Timer("llm")()
			j, err := s.llm.Judge(gctx, source)
			if err != nil {
				// Advisory path: record and degrade, never fail the
				// deterministic result.
				metrics.LLMCallsTotal.WithLabelValues("error").Inc()
				s.log.Warn("LLM judgment failed", "request_id", requestID, "error", err)
				return nil
			}
			metrics.LLMCallsTotal.WithLabelValues("ok").Inc()
			judgment = &j
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return resp, http.StatusInternalServerError, err
	}

	resp.Program = result.Program
	resp.Routines = result.Routines
	resp.Findings = result.Findings
	resp.Warnings = result.Warnings

	if match, ok := patterns.Identify(source); ok {
		resp.Pattern = &match
	}
	if req.IncludeAST {
		resp.AST = prog.Format()
	}
	if judgment != nil {
		resp.LLM = judgment
		report := compare.Compare(compare.Bounds{
			O:     result.Program.O,
			Omega: result.Program.Omega,
			Theta: result.Program.Theta,
		}, compare.Bounds{
			O:     judgment.O,
			Omega: judgment.Omega,
			Theta: judgment.Theta,
		}, judgment.Explanation)
		resp.Comparison = &report
		metrics.LLMAgreement.Observe(report.AgreementScore)
	}
	return resp, http.StatusOK, nil
}

// cacheSettings snapshots everything outside the source that shapes
// the response.
func (s *Server) cacheSettings(req AnalyzeRequest) string {
	return fmt.Sprintf("v1;tokens=%d;depth=%d;natural=%t;validate=%t;ast=%t",
		s.cfg.Analysis.MaxTokens, s.cfg.Analysis.MaxDepth,
		req.Natural, req.Validate && s.llm != nil, req.IncludeAST)
}

func toErrorResponse(requestID string, err error) errorResponse {
	resp := errorResponse{RequestID: requestID, Error: err.Error()}
	var lexErr *bigo.LexError
	var parseErr *bigo.ParseError
	switch {
	case errors.As(err, &lexErr):
		resp.Line, resp.Column = lexErr.Line, lexErr.Column
	case errors.As(err, &parseErr):
		resp.Line, resp.Column = parseErr.Line, parseErr.Column
	}
	return resp
}
