package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salao_backend/internal/models"
	"salao_backend/internal/services"
	"salao_backend/pkg/utils"
)

// BackupHandler exposes backup management, admin only.
type BackupHandler struct {
	backupService *services.BackupService
	recorder      recorder
}

// NewBackupHandler creates a new instance of BackupHandler.
func NewBackupHandler(backupService *services.BackupService, audit *services.AuditService, activityLog *services.ActivityLogService) *BackupHandler {
	return &BackupHandler{backupService: backupService, recorder: newRecorder(audit, activityLog)}
}

// Run triggers a backup immediately.
func (h *BackupHandler) Run(c *gin.Context) {
	metadata, err := h.backupService.Run()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditBackup, models.ResourceBackup, metadata.ID, "Backup executado", nil)
	c.JSON(http.StatusOK, metadata)
}

// History lists past backup runs.
func (h *BackupHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.backupService.History())
}

// Files lists dump files on disk.
func (h *BackupHandler) Files(c *gin.Context) {
	files, err := h.backupService.ListFiles()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// GetConfig returns backup settings.
func (h *BackupHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.backupService.Config())
}

// UpdateConfig changes retention and compression.
func (h *BackupHandler) UpdateConfig(c *gin.Context) {
	var config models.BackupConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	h.backupService.UpdateConfig(config)
	h.recorder.record(c, models.AuditUpdate, models.ResourceSettings, "", "Configuração de backup alterada", nil)
	c.JSON(http.StatusOK, h.backupService.Config())
}

type restoreRequest struct {
	File string `json:"file" binding:"required"`
}

// Restore replays a dump file into the database.
func (h *BackupHandler) Restore(c *gin.Context) {
	var request restoreRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	if err := h.backupService.Restore(request.File); err != nil {
		respondServiceError(c, err)
		return
	}
	h.recorder.record(c, models.AuditRestore, models.ResourceBackup, request.File, "Backup restaurado", nil)
	c.JSON(http.StatusOK, gin.H{"message": "Backup restaurado com sucesso"})
}
