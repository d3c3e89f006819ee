package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/blogem/weblog/models"
	"github.com/blogem/weblog/services"
)

// writeJSON renders a CommonResult envelope with the provided status code
func writeJSON(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	result := models.CommonResult{
		Code:    statusCode,
		Message: message,
		Data:    data,
	}
	_ = json.NewEncoder(w).Encode(result)
}

// writeOK renders a successful result
func writeOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, "success", data)
}

// writeError renders a failure result without data
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, message, nil)
}

// Controllers holds all controller instances
type Controllers struct {
	WebLog *WebLogController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, logger logrus.FieldLogger) *Controllers {
	return &Controllers{
		WebLog: NewWebLogController(services, logger),
	}
}
