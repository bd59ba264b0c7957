package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ah-its-andy/reformed/internal/converter"
	"github.com/ah-its-andy/reformed/internal/db"
	"github.com/ah-its-andy/reformed/internal/formats"
	"github.com/ah-its-andy/reformed/internal/inflight"
	"github.com/ah-its-andy/reformed/internal/logging"
	"github.com/ah-its-andy/reformed/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// DocumentField is the multipart field carrying the uploaded document.
const DocumentField = "document"

// History is the conversion history the server records to and reads from.
type History interface {
	Insert(ctx context.Context, rec *db.ConversionRecord) error
	List(ctx context.Context, f db.Filter) ([]db.ConversionRecord, int64, error)
	Get(ctx context.Context, id string) (*db.ConversionRecord, error)
	Stats(ctx context.Context) (*db.Stats, error)
}

// Options wires a Server. History may be nil to disable recording.
type Options struct {
	Logger        *zap.Logger
	Formats       *formats.Registry
	Executor      *converter.Executor
	Pool          *worker.Pool
	Tracker       *inflight.Tracker
	History       History
	MaxBufferSize int64
	WorkspaceRoot string
	CORSOrigins   []string
}

type Server struct {
	Router *gin.Engine

	logger        *zap.Logger
	formats       *formats.Registry
	exec          *converter.Executor
	pool          *worker.Pool
	tracker       *inflight.Tracker
	history       History
	maxBufferSize int64
	workspaceRoot string
	cors          *cors.Cors
}

func NewServer(opts Options) *Server {
	s := &Server{
		logger:        opts.Logger,
		formats:       opts.Formats,
		exec:          opts.Executor,
		pool:          opts.Pool,
		tracker:       opts.Tracker,
		history:       opts.History,
		maxBufferSize: opts.MaxBufferSize,
		workspaceRoot: opts.WorkspaceRoot,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.formats == nil {
		s.formats = formats.Default
	}
	if s.tracker == nil {
		s.tracker = inflight.NewTracker()
	}
	if s.pool == nil {
		s.pool = worker.NewPool(1)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.cors = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", logging.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", "Content-Length", logging.RequestIDHeader},
	})

	g := gin.New()
	g.Use(logging.Middleware(s.logger), gin.Recovery())
	g.NoRoute(func(c *gin.Context) { s.fail(c, nil, errRouteNotFound) })
	s.Router = g

	api := g.Group("/api/v1")
	api.POST("/from/:from/to/:to", s.convert)
	api.GET("/formats", s.listFormats)
	api.GET("/conversions", s.listConversions)
	api.GET("/conversions/active", s.activeConversions)
	api.GET("/conversions/:id", s.getConversion)
	api.GET("/stats", s.getStats)
	api.GET("/health", s.health)

	return s
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	return s.cors.Handler(s.Router)
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
