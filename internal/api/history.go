package api

import (
	"fmt"
	"net/http"

	"github.com/ah-its-andy/reformed/internal/db"
	"github.com/gin-gonic/gin"
)

func (s *Server) listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, s.formats.Listing())
}

func (s *Server) listConversions(c *gin.Context) {
	if s.history == nil {
		s.fail(c, nil, ErrHistoryDisabled)
		return
	}
	status := db.Status(c.Query("status"))
	switch status {
	case "", db.StatusSuccess, db.StatusFailed:
	default:
		s.fail(c, nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, status))
		return
	}
	f := db.Filter{
		Status: status,
		Limit:  parseIntDefault(c.Query("limit"), db.DefaultListLimit),
		Offset: parseIntDefault(c.Query("offset"), 0),
	}
	rows, total, err := s.history.List(c.Request.Context(), f)
	if err != nil {
		s.fail(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows, "total": total})
}

func (s *Server) getConversion(c *gin.Context) {
	if s.history == nil {
		s.fail(c, nil, ErrHistoryDisabled)
		return
	}
	rec, err := s.history.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) activeConversions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data":    s.tracker.Snapshot(),
		"workers": s.pool.Size(),
		"in_use":  s.pool.InUse(),
		"waiting": s.pool.Waiting(),
	})
}

func (s *Server) getStats(c *gin.Context) {
	resp := gin.H{
		"active":  s.tracker.Len(),
		"workers": s.pool.Size(),
		"in_use":  s.pool.InUse(),
		"waiting": s.pool.Waiting(),
		"history": nil,
	}
	if s.history != nil {
		st, err := s.history.Stats(c.Request.Context())
		if err != nil {
			s.fail(c, nil, err)
			return
		}
		resp["history"] = st
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) health(c *gin.Context) {
	resp := gin.H{"status": "ok"}
	if s.exec != nil {
		resp["converter"] = s.exec.Tool()
		resp["timeout"] = s.exec.Timeout().String()
	}
	c.JSON(http.StatusOK, resp)
}
