package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/platekeep/recipedocs-backend/internal/docgen"
	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/services"
	"github.com/platekeep/recipedocs-backend/internal/temporalx/recipedoc"
)

type RecipeDocsHandler struct {
	log      *logger.Logger
	runs     services.DocumentRunService
	syncWait time.Duration
}

func NewRecipeDocsHandler(log *logger.Logger, runs services.DocumentRunService, syncWait time.Duration) *RecipeDocsHandler {
	return &RecipeDocsHandler{log: log, runs: runs, syncWait: syncWait}
}

type generateRequest struct {
	RecipeNames []string `json:"recipe_names"`
	Format      string   `json:"format"`
	Download    bool     `json:"download"`
}

// POST /generate_recipes/:user_id
func (h *RecipeDocsHandler) Generate(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		RespondError(c, http.StatusBadRequest, errors.New("Please provide a user_id in the URL"))
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, errors.New("Invalid request body"))
		return
	}

	if len(req.RecipeNames) == 0 {
		RespondError(c, http.StatusBadRequest, errors.New("Please provide recipe_names in the request body"))
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = docgen.FormatPDF
	}
	if !docgen.ValidFormat(format) {
		RespondError(c, http.StatusBadRequest, errors.New("Format must be either 'pdf' or 'docx'"))
		return
	}

	instanceID, err := h.runs.StartRun(c.Request.Context(), recipedoc.Input{
		UserID:      userID,
		RecipeNames: req.RecipeNames,
		Format:      format,
		Download:    req.Download,
	})
	if err != nil {
		h.log.Error("Failed to start document run", "user_id", userID, "error", err)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Attempt an inline result; when the run outlives the wait window the
	// client gets a polling handle instead. A pending download=true request
	// deliberately falls through to the handle as well.
	result, completed, err := h.runs.AwaitResult(c.Request.Context(), instanceID, h.syncWait)
	if err != nil {
		h.log.Error("Document run failed", "instance_id", instanceID, "error", err)
		RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !completed {
		c.JSON(http.StatusAccepted, gin.H{
			"id":         instanceID,
			"status_url": statusURL(instanceID),
		})
		return
	}

	h.respondResult(c, userID, format, req.Download, result)
}

// GET /generate_recipes/status/:instance_id
func (h *RecipeDocsHandler) Status(c *gin.Context) {
	instanceID := strings.TrimSpace(c.Param("instance_id"))
	if instanceID == "" {
		RespondError(c, http.StatusBadRequest, errors.New("Please provide an instance_id in the URL"))
		return
	}

	status, result, err := h.runs.GetStatus(c.Request.Context(), instanceID)
	switch {
	case err != nil:
		RespondError(c, http.StatusInternalServerError, err)
		return
	case status == services.RunStatusRunning:
		c.JSON(http.StatusAccepted, gin.H{"id": instanceID, "status": string(status)})
		return
	}

	userID := userIDFromInstance(instanceID)
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", docgen.FormatPDF)))
	if !docgen.ValidFormat(format) {
		RespondError(c, http.StatusBadRequest, errors.New("Format must be either 'pdf' or 'docx'"))
		return
	}
	download := strings.EqualFold(c.Query("download"), "true")

	h.respondResult(c, userID, format, download, result)
}

func (h *RecipeDocsHandler) respondResult(c *gin.Context, userID, format string, download bool, result *recipedoc.RunResult) {
	if result == nil {
		RespondError(c, http.StatusInternalServerError, errors.New("missing workflow result"))
		return
	}

	if result.Success && download {
		content, ok := result.Documents[format]
		if !ok {
			RespondError(c, http.StatusInternalServerError, fmt.Errorf("no %s document in result", format))
			return
		}
		raw, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, fmt.Errorf("decode document: %w", err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", docgen.Filename(userID, format)))
		c.Header("Access-Control-Expose-Headers", "Content-Disposition")
		c.Data(http.StatusOK, docgen.MIMEType(format), raw)
		return
	}

	RespondOK(c, result)
}

func statusURL(instanceID string) string {
	return "/generate_recipes/status/" + instanceID
}

// userIDFromInstance recovers the user id from the "recipes-{user}-{ts}"
// instance id used by StartRun, for the attachment filename on the polling
// path.
func userIDFromInstance(instanceID string) string {
	trimmed := strings.TrimPrefix(instanceID, "recipes-")
	if idx := strings.LastIndex(trimmed, "-"); idx > 0 {
		// Timestamp suffix is "yyyymmdd-hhmmss"; strip both segments.
		if idx2 := strings.LastIndex(trimmed[:idx], "-"); idx2 > 0 {
			return trimmed[:idx2]
		}
	}
	return trimmed
}
