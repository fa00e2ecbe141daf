package handlers

import (
	"net/http"
	"os"
	"time"

	"nestview-web/internal/models"
	"nestview-web/internal/uploads"
	"nestview-web/internal/validators"
	"nestview-web/pkg/backend"
	"nestview-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PropertiesHandler stages listing images and submits new listings to the
// backend. Staging lists are per-visitor; the preview handles they hold
// are released on removal, submission, and registry eviction.
type PropertiesHandler struct {
	api       *backend.Client
	previews  uploads.PreviewStore
	validator *validators.PropertyFormValidator
	staging   *registry[*uploads.StagingList]
}

func NewPropertiesHandler(api *backend.Client, previews uploads.PreviewStore) *PropertiesHandler {
	h := &PropertiesHandler{
		api:       api,
		previews:  previews,
		validator: validators.NewPropertyFormValidator(),
		staging: newRegistry[*uploads.StagingList](time.Hour, func(list *uploads.StagingList) {
			if err := list.Close(); err != nil {
				logger.GlobalLogger.Errorf("Failed to release staged previews on eviction: %v", err)
			}
		}),
	}
	go h.staging.Cleanup()
	return h
}

func (h *PropertiesHandler) list(c *gin.Context) *uploads.StagingList {
	id := visitorID(c)
	list, ok := h.staging.get(id)
	if !ok {
		list = uploads.NewStagingList(h.previews)
		h.staging.put(id, list)
	}
	return list
}

type stagingResponse struct {
	Success  bool                 `json:"success"`
	Files    []uploads.StagedFile `json:"files"`
	Accepted int                  `json:"accepted"`
	Rejected int                  `json:"rejected"`
	Message  string               `json:"message,omitempty"`
}

// StageImages accepts a multipart batch into the staging area. Files past
// the remaining capacity (or with non-image MIME types) are rejected with
// a notice, never truncated silently.
func (h *PropertiesHandler) StageImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "multipart form required"})
		return
	}

	var batch []uploads.Incoming
	var open []interface{ Close() error }
	for _, header := range form.File["images"] {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unreadable file in batch"})
			break
		}
		open = append(open, f)
		batch = append(batch, uploads.Incoming{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
			Data:        f,
		})
	}
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()
	if len(batch) != len(form.File["images"]) {
		return
	}

	list := h.list(c)
	result, err := list.Add(batch)
	if err != nil {
		c.Error(err)
		return
	}

	resp := stagingResponse{
		Success:  true,
		Files:    list.Files(),
		Accepted: result.Accepted,
		Rejected: result.Rejected(),
	}
	if result.RejectedFull > 0 {
		resp.Message = "some files were not added: only 10 images can be attached to a listing"
	} else if result.RejectedType > 0 {
		resp.Message = "some files were not added: only images are accepted"
	}
	c.JSON(http.StatusOK, resp)
}

// Staged returns the current staging area.
func (h *PropertiesHandler) Staged(c *gin.Context) {
	list := h.list(c)
	c.JSON(http.StatusOK, stagingResponse{Success: true, Files: list.Files()})
}

// UnstageImage removes one staged file and releases its preview handle
// immediately.
func (h *PropertiesHandler) UnstageImage(c *gin.Context) {
	var req struct {
		Index int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	list := h.list(c)
	if err := list.Remove(req.Index); err != nil {
		logger.GlobalLogger.Errorf("Failed to release preview handle: %v", err)
	}
	c.JSON(http.StatusOK, stagingResponse{Success: true, Files: list.Files()})
}

// ClearStaged releases every staged preview, the teardown path for an
// abandoned form.
func (h *PropertiesHandler) ClearStaged(c *gin.Context) {
	h.staging.delete(visitorID(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Submit validates the listing form and streams the staged images into a
// multipart submission. The staging area is released only on success so a
// failed submit keeps the form intact.
func (h *PropertiesHandler) Submit(c *gin.Context) {
	var form models.PropertyForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := h.validator.Validate(&form); err != nil {
		c.Error(err)
		return
	}

	list := h.list(c)
	staged := list.Files()

	images := make([]backend.PropertyImage, 0, len(staged))
	var readers []*os.File
	defer func() {
		for _, f := range readers {
			f.Close()
		}
	}()
	for _, sf := range staged {
		f, err := os.Open(sf.Preview)
		if err != nil {
			logger.GlobalLogger.Errorf("Failed to open staged preview %s: %v", sf.Preview, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "staged image unavailable, please re-add your images"})
			return
		}
		readers = append(readers, f)
		images = append(images, backend.PropertyImage{
			Name:        sf.Name,
			ContentType: sf.ContentType,
			Data:        f,
		})
	}

	if err := h.api.CreateProperty(c.Request.Context(), &form, images); err != nil {
		c.Error(err)
		return
	}

	h.staging.delete(visitorID(c))
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "listing submitted for approval"})
}
