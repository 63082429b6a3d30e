package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/foxseedlab/meetnotes/external/worker"
	"github.com/foxseedlab/meetnotes/internal/dispatch"
	"github.com/foxseedlab/meetnotes/internal/webhook"
	"github.com/gin-gonic/gin"
)

const (
	serviceName = "meetnotes"

	healthPath  = "/health"
	webhookPath = "/webhooks/attio/call-recording-created"
	jobsPath    = "/internal/jobs"

	maxBodyBytes = 10 << 20
)

type endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var (
	webhookEndpoints = []endpoint{
		{Method: http.MethodGet, Path: "/", Description: "Service capabilities"},
		{Method: http.MethodGet, Path: healthPath, Description: "Liveness check"},
		{Method: http.MethodPost, Path: webhookPath, Description: "Attio call-recording.created webhook"},
	}
	workerEndpoints = []endpoint{
		{Method: http.MethodGet, Path: healthPath, Description: "Liveness check"},
		{Method: http.MethodPost, Path: jobsPath, Description: "Accept a handed-off recording job"},
	}
)

// NewWebhookRouter serves the CRM webhook. Accepted events go to the
// receiver's dispatcher.
func NewWebhookRouter(receiver *webhook.Receiver, logger *slog.Logger) *gin.Engine {
	r := newEngine(logger, webhookEndpoints)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":   serviceName,
			"status":    "running",
			"endpoints": webhookEndpoints,
		})
	})
	r.POST(webhookPath, func(c *gin.Context) {
		body, ok := readBody(c)
		if !ok {
			return
		}
		status, resp := receiver.Handle(c.Request.Context(), body)
		c.JSON(status, resp)
	})
	return r
}

// NewWorkerRouter serves hand-off intake. Jobs run on runner; the answer is
// 202 once the job has started.
func NewWorkerRouter(runner dispatch.Dispatcher, secret string, logger *slog.Logger) *gin.Engine {
	r := newEngine(logger, workerEndpoints)
	r.POST(jobsPath, func(c *gin.Context) {
		if !worker.Authorized(secret, c.GetHeader(worker.TokenHeader)) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid worker token"})
			return
		}
		body, ok := readBody(c)
		if !ok {
			return
		}
		job, err := worker.DecodeJob(body, time.Now())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		if err := runner.Submit(c.Request.Context(), job); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, dispatch.ErrClosed) {
				status = http.StatusServiceUnavailable
			}
			logger.Error("job intake failed", "job_id", job.ID, "error", err)
			c.JSON(status, gin.H{"success": false, "error": err.Error(), "job_id": job.ID})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"success":           true,
			"job_id":            job.ID,
			"meeting_id":        job.Event.MeetingID,
			"call_recording_id": job.Event.RecordingID,
		})
	})
	return r
}

func newEngine(logger *slog.Logger, endpoints []endpoint) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	r.GET(healthPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":               "Not found",
			"path":                c.Request.URL.Path,
			"available_endpoints": endpoints,
		})
	})
	return r
}

func readBody(c *gin.Context) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err == nil {
		return body, true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": "request body too large"})
		return nil, false
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read request body"})
	return nil, false
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == healthPath {
			c.Next()
			return
		}
		started := time.Now()
		c.Next()
		logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(started).Milliseconds(),
		)
	}
}
