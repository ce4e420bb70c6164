// Package web serves the word list as an HTML page and a JSON API.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"wordbook/internal/render"
	"wordbook/internal/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Route constants
const (
	RouteHome          = "/"
	RouteWords         = "/words"
	RouteWordMemorized = "/words/:id/memorized"
	RouteWordDelete    = "/words/:id/delete"
	RouteAPIWords      = "/api/words"
	RouteAPIWord       = "/api/words/:id"
	RouteHealth        = "/healthz"
)

// Options configures the web server
type Options struct {
	RateLimitRPS   int
	RateLimitBurst int
}

// Server wires the word store to HTTP routes
type Server struct {
	store  *service.WordStore
	stats  *service.StatsService
	logger *zap.Logger
	opts   Options

	limiters   map[string]*clientLimiter
	limiterMux sync.Mutex
	lastPrune  time.Time
	now        func() time.Time
}

// NewServer creates a new web server
func NewServer(
	store *service.WordStore,
	stats *service.StatsService,
	logger *zap.Logger,
	opts Options,
) *Server {
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 1
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 1
	}
	return &Server{
		store:    store,
		stats:    stats,
		logger:   logger,
		opts:     opts,
		limiters: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(s.accessLogMiddleware())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))

	tmpl := template.Must(template.New("").
		Funcs(template.FuncMap{"rowID": render.RowID}).
		ParseFS(templatesFS, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	limited := s.rateLimitMiddleware()

	router.GET(RouteHome, s.homeHandler)
	router.POST(RouteWords, limited, s.addWordHandler)
	router.POST(RouteWordMemorized, limited, s.toggleMemorizedHandler)
	router.POST(RouteWordDelete, limited, s.removeWordHandler)

	api := router.Group(RouteAPIWords)
	api.GET("", s.listWordsHandler)
	api.GET("/:id", s.getWordHandler)
	api.POST("", limited, s.createWordHandler)
	api.PATCH("/:id", limited, s.updateWordHandler)
	api.DELETE("/:id", limited, s.deleteWordHandler)

	router.GET(RouteHealth, s.healthHandler)

	return router
}

// NewHTTPServer wraps the router in an http.Server listening on addr
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
