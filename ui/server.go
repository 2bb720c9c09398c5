package ui

import (
	"insightlens/app"
	"insightlens/internal"

	"github.com/gin-gonic/gin"
)

// Server is the HTTP surface over the analysis pipeline.
type Server struct {
	router        *gin.Engine
	service       *app.AnalysisService
	maxUploadSize int64
	logger        *internal.Logger
}

// NewServer creates the web server and registers its routes.
func NewServer(service *app.AnalysisService, maxUploadSize int64) *Server {
	s := &Server{
		router:        gin.Default(),
		service:       service,
		maxUploadSize: maxUploadSize,
		logger:        internal.DefaultLogger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.MaxMultipartMemory = s.maxUploadSize

	s.router.POST("/upload", s.handleUpload)
	s.router.POST("/analyze", s.handleAnalyze)
	s.router.GET("/report/:id", s.handleGetReport)
	s.router.GET("/reports", s.handleListReports)
	s.router.GET("/status", s.handleStatus)
}

// Router exposes the gin engine for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting server on %s", addr)
	return s.router.Run(addr)
}
