package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/purekb/purekb/app/core"
	"github.com/purekb/purekb/app/response"
	"github.com/purekb/purekb/pkg/errors"
)

const VERSION = "1.0.0"

type HttpSrv struct {
	Core   *core.Core
	Engine *gin.Engine
}

func (s *HttpSrv) apiError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if cerr, ok := err.(*errors.CustomizedError); ok {
		status = cerr.GetCode()
	}
	s.Core.Metrics().ApiErrorInc(c.Request.Method, c.Request.URL.Path, status)
	response.APIError(c, err)
}

type HealthResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func (s *HttpSrv) Health(c *gin.Context) {
	response.APISuccess(c, HealthResponse{
		Success:   true,
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   VERSION,
	})
}
