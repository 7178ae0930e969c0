package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhyrak/go-timetable/internal/apperr"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data       interface{}            `json:"data,omitempty"`
	Error      *apperr.Error          `json:"error,omitempty"`
	Pagination *Pagination            `json:"pagination,omitempty"`
	Meta       map[string]interface{} `json:"meta,omitempty"`
}

// Pagination describes one page of a session. Pages start at 1.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalCount int  `json:"total_count"`
	HasMore    bool `json:"has_more"`
}

func respondJSON(c *gin.Context, status int, data interface{}, pagination *Pagination, meta map[string]interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{Data: data, Pagination: pagination, Meta: meta})
}

func respondError(c *gin.Context, err error) {
	appErr := apperr.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(appErr.Status, Envelope{Error: appErr})
}
