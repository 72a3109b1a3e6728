package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sacco-backend/internal/domain/workflow"
)

// WorkflowHandler reloads the catalog snapshot after administrative edits.
type WorkflowHandler struct {
	repo    workflow.Repository
	catalog *workflow.Holder
	log     *zap.SugaredLogger
}

func NewWorkflowHandler(repo workflow.Repository, catalog *workflow.Holder, log *zap.SugaredLogger) *WorkflowHandler {
	return &WorkflowHandler{repo: repo, catalog: catalog, log: log}
}

func (h *WorkflowHandler) Reload(c echo.Context) error {
	cat, err := workflow.Load(c.Request().Context(), h.repo)
	if err != nil {
		// Misconfigured catalog: keep the previous snapshot in service.
		if h.log != nil {
			h.log.Errorw("workflow catalog reload failed", "error", err)
		}
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	h.catalog.Replace(cat)
	if h.log != nil {
		h.log.Infow("workflow catalog reloaded")
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "reloaded"})
}
