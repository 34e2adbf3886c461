package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/r0ller/morfessor/decode"
	"github.com/r0ller/morfessor/store"
	"github.com/r0ller/morfessor/tree"
)

var cmdServe = &cli.Command{
	Name:  "serve",
	Usage: "serve a trained model over HTTP",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "model-store", Required: true, Usage: "badger directory holding the trained model"},
		&cli.StringFlag{Name: "model-name", Value: "default", Usage: "name the model was saved under"},
		&cli.StringFlag{Name: "addr", Value: ":8080", Usage: "address to listen on"},
		&cli.IntFlag{Name: "concurrency", Usage: "bound on concurrent word decodes per request (0 means unbounded)"},
	},
	Action: runServe,
}

// segmentServer holds the model and request-handling state for the serve
// subcommand, mirroring the Handlers-wraps-a-service shape used throughout
// the pack's HTTP services.
type segmentServer struct {
	tree        *tree.Tree
	modelName   string
	trainedAt   time.Time
	overallCost float64
	concurrency int
}

// SegmentRequest is the body of POST /segment.
type SegmentRequest struct {
	Words []string `json:"words" binding:"required,min=1,dive,required"`
}

// SegmentResult is one word's segmentation in a SegmentResponse.
type SegmentResult struct {
	Word   string   `json:"word"`
	Morphs []string `json:"morphs"`
}

// SegmentResponse is the body of a successful POST /segment.
type SegmentResponse struct {
	Results []SegmentResult `json:"results"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status      string    `json:"status"`
	Model       string    `json:"model"`
	TrainedAt   time.Time `json:"trained_at"`
	OverallCost float64   `json:"overall_cost"`
}

// ErrorResponse is the standard error body for non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func runServe(c *cli.Context) error {
	s, err := store.Open(c.String("model-store"))
	if err != nil {
		return err
	}
	defer s.Close()

	t, model, err := s.Load(c.String("model-name"))
	if err != nil {
		return err
	}
	slog.Info("model loaded for serving",
		"name", c.String("model-name"),
		"trained_at", model.TrainedAt,
		"lexicon_size", t.Size())

	srv := &segmentServer{
		tree:        t,
		modelName:   c.String("model-name"),
		trainedAt:   model.TrainedAt,
		overallCost: model.OverallCost,
		concurrency: c.Int("concurrency"),
	}

	reg := prometheus.NewRegistry()

	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware())
	router.GET("/healthz", srv.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.POST("/segment", srv.handleSegment)

	slog.Info("listening", "addr", c.String("addr"))
	return router.Run(c.String("addr"))
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

func (s *segmentServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "healthy",
		Model:       s.modelName,
		TrainedAt:   s.trainedAt,
		OverallCost: s.overallCost,
	})
}

func (s *segmentServer) handleSegment(c *gin.Context) {
	logger := slog.With("request_id", c.GetHeader("X-Request-ID"), "handler", "handleSegment")

	var req SegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	results, err := decode.SegmentAll(ctx, s.tree, req.Words, s.concurrency)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusGatewayTimeout, ErrorResponse{
				Error: err.Error(),
				Code:  "SEGMENT_TIMEOUT",
			})
			return
		}
		logger.Error("segment failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "SEGMENT_FAILED",
		})
		return
	}

	resp := SegmentResponse{Results: make([]SegmentResult, len(results))}
	for i, r := range results {
		resp.Results[i] = SegmentResult{Word: r.Word, Morphs: r.Morphs}
	}
	c.JSON(http.StatusOK, resp)
}
