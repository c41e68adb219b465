package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/annerraquino/auth0-cleanup-sb/internal/cleanup"
	"github.com/annerraquino/auth0-cleanup-sb/internal/config"
	"github.com/annerraquino/auth0-cleanup-sb/internal/jobs"
	"github.com/annerraquino/auth0-cleanup-sb/internal/source"
	"github.com/annerraquino/auth0-cleanup-sb/internal/storage"
)

type Handler struct {
	cfg   config.Config
	store storage.ObjectStore
	orch  *cleanup.Orchestrator
	runs  jobs.Store
	log   *zap.Logger
}

func NewHandler(
	cfg config.Config,
	store storage.ObjectStore,
	orch *cleanup.Orchestrator,
	runs jobs.Store,
	log *zap.Logger,
) *Handler {
	return &Handler{
		cfg:   cfg,
		store: store,
		orch:  orch,
		runs:  runs,
		log:   log,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/batch/run", h.runBatch)
	r.GET("/batch/runs/:id", h.getRun)
	r.DELETE("/users/by-ssoid/:ssoid", h.deleteBySsoid)
}

// runBatch executes the whole pipeline for the configured (or overridden)
// input object and reports the run id and coarse status.
func (h *Handler) runBatch(c *gin.Context) {
	dryRun, _ := strconv.ParseBool(c.DefaultQuery("dryRun", "false"))
	inputKey := c.Query("inputKey")
	if inputKey == "" {
		inputKey = h.cfg.InputS3Key
	}

	run := jobs.NewRun(dryRun, inputKey)
	if err := h.runs.Put(c.Request.Context(), run); err != nil {
		h.log.Error("failed to register run", zap.Error(err))
	}

	h.log.Info("batch run started",
		zap.String("run_id", run.ID),
		zap.Bool("dry_run", dryRun),
		zap.String("input_key", inputKey),
	)

	recs, err := source.Load(c.Request.Context(), h.store, inputKey, h.log)
	if err != nil {
		h.finishRun(c, run, 0, 0, err)
		return
	}

	outcomes, err := h.orch.Run(c.Request.Context(), recs, dryRun)

	failed := 0
	for _, out := range outcomes {
		if out.Status == cleanup.StatusError {
			failed++
		}
	}
	h.finishRun(c, run, len(outcomes), failed, err)
}

func (h *Handler) finishRun(c *gin.Context, run jobs.Run, processed, failed int, err error) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	run.Processed = processed
	run.Failed = failed

	if err != nil {
		run.Status = jobs.RunFailed
		run.Error = err.Error()
	} else {
		run.Status = jobs.RunCompleted
	}

	if putErr := h.runs.Put(c.Request.Context(), run); putErr != nil {
		h.log.Error("failed to update run", zap.Error(putErr))
	}

	body := gin.H{
		"job_id":    run.ID,
		"status":    string(run.Status),
		"processed": run.Processed,
		"failed":    run.Failed,
		"dry_run":   run.DryRun,
	}
	if err != nil {
		h.log.Error("batch run failed",
			zap.String("run_id", run.ID),
			zap.Error(err),
		)
		body["error"] = err.Error()
		c.JSON(http.StatusInternalServerError, body)
		return
	}

	h.log.Info("batch run finished",
		zap.String("run_id", run.ID),
		zap.Int("processed", run.Processed),
		zap.Int("failed", run.Failed),
	)
	c.JSON(http.StatusOK, body)
}

func (h *Handler) getRun(c *gin.Context) {
	run, err := h.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown run id"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// deleteBySsoid pushes a single ad-hoc record through the same pipeline the
// batch uses, ledger write included.
func (h *Handler) deleteBySsoid(c *gin.Context) {
	ssoid := c.Param("ssoid")
	if ssoid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ssoid is required"})
		return
	}
	dryRun, _ := strconv.ParseBool(c.DefaultQuery("dryRun", "false"))

	outcomes, err := h.orch.Run(c.Request.Context(), []cleanup.Record{{Ssoid: ssoid}}, dryRun)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := outcomes[0]
	c.JSON(http.StatusOK, gin.H{
		"ssoid":       out.Ssoid,
		"user_id":     out.UserID,
		"status":      string(out.Status),
		"deactivated": out.Deactivated,
		"timestamp":   out.Timestamp,
		"error":       out.Err,
	})
}
