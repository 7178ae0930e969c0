package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/export"
	"github.com/rhyrak/go-timetable/internal/logger"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/internal/session"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Options wires the HTTP handler. Zero values fall back to defaults, except
// Planner and Store which are created with default settings when nil.
type Options struct {
	Planner        *scheduler.Planner
	Store          *session.Store
	Exporter       *export.PDFExporter
	Logger         *zap.Logger
	Validate       *validator.Validate
	Metrics        http.Handler
	AllowedOrigins []string
	PageSize       int
	Delimiter      rune
	MaxUploadBytes int64
	// DefaultRows is the course table used when a request carries no rows.
	DefaultRows []*model.CourseRow
}

type Handler struct {
	planner   *scheduler.Planner
	store     *session.Store
	pdf       *export.PDFExporter
	log       *zap.Logger
	validate  *validator.Validate
	metrics   http.Handler
	origins   []string
	pageSize  int
	delim     rune
	maxUpload int64
	rows      []*model.CourseRow
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		planner:   opts.Planner,
		store:     opts.Store,
		pdf:       opts.Exporter,
		log:       opts.Logger,
		validate:  opts.Validate,
		metrics:   opts.Metrics,
		origins:   opts.AllowedOrigins,
		pageSize:  opts.PageSize,
		delim:     opts.Delimiter,
		maxUpload: opts.MaxUploadBytes,
		rows:      opts.DefaultRows,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.planner == nil {
		h.planner = scheduler.NewPlanner(nil, h.log, nil)
	}
	if h.store == nil {
		h.store = session.NewStore(0)
	}
	if h.pdf == nil {
		h.pdf = export.NewPDFExporter()
	}
	if h.validate == nil {
		h.validate = newValidator()
	} else {
		_ = h.validate.RegisterValidation("clock", clockValidation)
	}
	if h.pageSize <= 0 {
		h.pageSize = scheduler.DefaultPageSize
	}
	if h.delim == 0 {
		h.delim = ';'
	}
	return h
}

// Router registers every route on a new gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), logger.GinMiddleware(h.log), cors(h.origins))

	r.GET("/healthz", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics))
	}

	r.POST("/plan", h.Plan)
	r.POST("/plan/joint", h.PlanJoint)
	r.POST("/plan/upload", h.Upload)

	r.GET("/sessions/:id", h.Session)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.GET("/sessions/:id/:index/pdf", h.PDF)

	return r
}
