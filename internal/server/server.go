package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/tdhctl/internal/observability"
	"github.com/danmuck/tdhctl/internal/tdh"
)

// Server exposes one metadata Catalog over HTTP.
type Server struct {
	app     string
	addr    string
	catalog *tdh.Catalog
	router  *gin.Engine
	started time.Time
}

// New builds the serve-mode router: recovery, request logging, request
// metrics, and CORS when origins are configured.
func New(app, addr string, corsOrigins []string, catalog *tdh.Catalog) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware())
	if len(corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	s := &Server{
		app:     app,
		addr:    addr,
		catalog: catalog,
		router:  r,
		started: time.Now(),
	}
	s.registerRoutes()
	return s
}

// HTTPRouter exposes the router, for tests.
func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

// Serve blocks on the configured listener.
func (s *Server) Serve() error {
	log.Info().Str("app", s.app).Str("addr", s.addr).Msg("serving metadata catalog")
	return s.router.Run(s.addr)
}
