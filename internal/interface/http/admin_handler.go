package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Rafid41/LMS/internal/application"
	"github.com/Rafid41/LMS/pkg/response"
	"github.com/Rafid41/LMS/pkg/validation"
)

// AdminHandler exposes the reference-data CRUD and the account search
// backed by Elasticsearch. All routes require the admin role.
type AdminHandler struct {
	Refs   *application.ReferenceService
	Search *application.SearchIndexer
	Logger *logrus.Logger
}

func NewAdminHandler(refs *application.ReferenceService, search *application.SearchIndexer, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Refs: refs, Search: search, Logger: logger}
}

type nameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type timezoneRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	UTCOffset string `json:"utc_offset" binding:"required,max=10"`
}

type languageRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	NativeName string `json:"native_name" binding:"max=100"`
}

func (h *AdminHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, application.ErrNotFound) {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	h.Logger.WithError(err).WithField("path", c.FullPath()).Error("admin request failed")
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}

func (h *AdminHandler) ListSubjectTags(c *gin.Context) {
	tags, err := h.Refs.ListSubjectTags(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags, "subject tags", nil)
}

func (h *AdminHandler) CreateSubjectTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Refs.CreateSubjectTag(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "subject tag created", nil)
}

func (h *AdminHandler) UpdateSubjectTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Refs.UpdateSubjectTag(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, t, "subject tag updated", nil)
}

func (h *AdminHandler) DeleteSubjectTag(c *gin.Context) {
	if err := h.Refs.DeleteSubjectTag(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "subject tag deleted", nil)
}

func (h *AdminHandler) ListTimezones(c *gin.Context) {
	zones, err := h.Refs.ListTimezones(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, zones, "timezones", nil)
}

func (h *AdminHandler) CreateTimezone(c *gin.Context) {
	var req timezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	z, err := h.Refs.CreateTimezone(c.Request.Context(), req.Name, req.UTCOffset)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, z, "timezone created", nil)
}

func (h *AdminHandler) UpdateTimezone(c *gin.Context) {
	var req timezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	z, err := h.Refs.UpdateTimezone(c.Request.Context(), c.Param("id"), req.Name, req.UTCOffset)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, z, "timezone updated", nil)
}

func (h *AdminHandler) DeleteTimezone(c *gin.Context) {
	if err := h.Refs.DeleteTimezone(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "timezone deleted", nil)
}

func (h *AdminHandler) ListLanguages(c *gin.Context) {
	langs, err := h.Refs.ListLanguages(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, langs, "languages", nil)
}

func (h *AdminHandler) CreateLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Refs.CreateLanguage(c.Request.Context(), req.Name, req.NativeName)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, l, "language created", nil)
}

func (h *AdminHandler) UpdateLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Refs.UpdateLanguage(c.Request.Context(), c.Param("id"), req.Name, req.NativeName)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, l, "language updated", nil)
}

func (h *AdminHandler) DeleteLanguage(c *gin.Context) {
	if err := h.Refs.DeleteLanguage(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "language deleted", nil)
}

func (h *AdminHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query parameter q", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Search.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("account search failed")
		response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
