package web

import (
	"errors"
	"net/http"

	"wordbook/internal/domain"
	"wordbook/internal/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createWordRequest struct {
	Word    string         `json:"word"`
	Meaning string         `json:"meaning"`
	Usages  []domain.Usage `json:"usages"`
}

func (s *Server) listWordsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, render.Partition(s.store.All()))
}

func (s *Server) getWordHandler(c *gin.Context) {
	record, ok := s.store.FindByID(c.Param("id"))
	if !ok {
		s.respondError(c, domain.ErrWordNotFound)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) createWordHandler(c *gin.Context) {
	var req createWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := s.store.Register(req.Word, req.Meaning, req.Usages)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) updateWordHandler(c *gin.Context) {
	id := c.Param("id")

	var patch domain.WordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := s.store.Update(id, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) deleteWordHandler(c *gin.Context) {
	if err := s.store.Unregister(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"words":  s.stats.Summary().Total,
	})
}

// respondError maps store errors to HTTP status codes
func (s *Server) respondError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrWordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "word not found"})
		return
	}

	s.logger.Error("Request failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(requestIDKey)),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
