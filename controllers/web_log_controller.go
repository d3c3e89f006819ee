package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/blogem/weblog/models"
	"github.com/blogem/weblog/repositories"
	"github.com/blogem/weblog/services"
)

// WebLogController handles web log query requests
type WebLogController struct {
	services *services.Services
	logger   logrus.FieldLogger
}

// NewWebLogController creates a new web log controller
func NewWebLogController(services *services.Services, logger logrus.FieldLogger) *WebLogController {
	return &WebLogController{
		services: services,
		logger:   logger,
	}
}

// List handles GET /weblog/list
func (c *WebLogController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pageNum, err := intParam(query.Get("pageNum"), models.DefaultPageNum)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pageNum")
		return
	}
	pageSize, err := intParam(query.Get("pageSize"), models.DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pageSize")
		return
	}

	filter := models.WebLogFilter{
		Actor:     query.Get("actor"),
		Operation: query.Get("operation"),
	}

	page, err := c.services.WebLog.ListByCondition(r.Context(), filter, pageNum, pageSize)
	if err != nil {
		c.logger.WithError(err).Error("failed to list web logs")
		writeError(w, http.StatusInternalServerError, "failed to list web logs")
		return
	}

	writeOK(w, page)
}

// GetItem handles GET /weblog/{id}
func (c *WebLogController) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid web log ID")
		return
	}

	entry, err := c.services.WebLog.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid web log ID")
		return
	case errors.Is(err, repositories.ErrNotFound):
		writeError(w, http.StatusNotFound, "web log not found")
		return
	case err != nil:
		c.logger.WithError(err).WithField("id", id).Error("failed to load web log")
		writeError(w, http.StatusInternalServerError, "failed to load web log")
		return
	}

	writeOK(w, entry)
}

// ListByActor handles GET /weblog/listByActor
func (c *WebLogController) ListByActor(w http.ResponseWriter, r *http.Request) {
	logs, err := c.services.WebLog.ListByActor(r.Context(), r.URL.Query().Get("actor"))
	switch {
	case errors.Is(err, services.ErrActorRequired):
		writeError(w, http.StatusBadRequest, "actor is required")
		return
	case err != nil:
		c.logger.WithError(err).Error("failed to list web logs by actor")
		writeError(w, http.StatusInternalServerError, "failed to list web logs")
		return
	}

	if logs == nil {
		logs = []models.WebLog{}
	}
	writeOK(w, logs)
}

// intParam parses an optional integer query parameter
func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
