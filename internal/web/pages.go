package web

import (
	"net/http"
	"strings"

	"wordbook/internal/domain"
	"wordbook/internal/render"

	"github.com/gin-gonic/gin"
)

type pageData struct {
	Lists domain.ListView
	Stats domain.Stats
}

// homeHandler renders the add-word form and both word lists
func (s *Server) homeHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{
		Lists: render.Partition(s.store.All()),
		Stats: s.stats.Summary(),
	})
}

// addWordHandler registers a word from the add-word form
func (s *Server) addWordHandler(c *gin.Context) {
	word := c.PostForm("word")
	meaning := c.PostForm("meaning")
	usages := formUsages(c.PostForm("usage_expression"), c.PostForm("usage_meaning"))

	if _, err := s.store.Register(word, meaning, usages); err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// toggleMemorizedHandler applies the memorized checkbox of a row
func (s *Server) toggleMemorizedHandler(c *gin.Context) {
	id := c.Param("id")

	var err error
	if c.PostForm("memorized") == "on" {
		err = s.store.MarkAsMemorized(id)
	} else {
		err = s.store.UnmarkAsMemorized(id)
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// removeWordHandler handles the remove button of a row
func (s *Server) removeWordHandler(c *gin.Context) {
	if err := s.store.Unregister(c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// formUsages builds the usage list from the optional form fields
func formUsages(expression, meaning string) []domain.Usage {
	expression = strings.TrimSpace(expression)
	meaning = strings.TrimSpace(meaning)
	if expression == "" && meaning == "" {
		return nil
	}
	return []domain.Usage{{Expression: expression, Meaning: meaning}}
}
