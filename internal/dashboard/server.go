package dashboard

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qepting91/subreddit-analyzer/internal/analyzer"
	"github.com/qepting91/subreddit-analyzer/internal/domain"
	"github.com/qepting91/subreddit-analyzer/internal/export"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	svc         *analyzer.Service
	suggestions []string
	logger      *slog.Logger
}

// page is the view model of index.html
type page struct {
	Query       string
	Loading     bool
	Error       string
	Rows        []domain.Row
	Suggestions []string
}

func NewServer(svc *analyzer.Service, suggestions []string, logger *slog.Logger) *Server {
	return &Server{svc: svc, suggestions: suggestions, logger: logger}
}

// Router builds the gin engine with every route of the UI.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/", s.index)
	router.POST("/analyze", s.analyze)
	router.GET("/api/state", s.state)
	router.GET("/chart", s.chart)
	router.GET("/export.ndjson", s.export)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting Dashboard", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) index(c *gin.Context) {
	s.render(c, http.StatusOK, "")
}

func (s *Server) analyze(c *gin.Context) {
	sub := c.PostForm("subreddit")
	err := s.svc.Start(sub)
	switch {
	case errors.Is(err, analyzer.ErrEmptyQuery):
		s.render(c, http.StatusBadRequest, "enter a subreddit name")
	case errors.Is(err, analyzer.ErrBusy):
		s.render(c, http.StatusConflict, err.Error())
	case err != nil:
		s.render(c, http.StatusInternalServerError, err.Error())
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// render writes the page for the current state. notice overrides the
// state's error line for request-level problems.
func (s *Server) render(c *gin.Context, code int, notice string) {
	st := s.svc.State()
	p := page{
		Query:       st.Query,
		Loading:     st.Status == analyzer.StatusLoading,
		Error:       st.Error,
		Rows:        st.Rows(),
		Suggestions: s.suggestions,
	}
	if notice != "" {
		p.Error = notice
		p.Rows = nil
	}
	c.HTML(code, "index.html", p)
}

type stateResponse struct {
	Status analyzer.Status `json:"status"`
	Query  string          `json:"query"`
	Error  string          `json:"error,omitempty"`
	Rows   []domain.Row    `json:"rows"`
}

func (s *Server) state(c *gin.Context) {
	st := s.svc.State()
	rows := st.Rows()
	if rows == nil {
		rows = []domain.Row{}
	}
	c.JSON(http.StatusOK, stateResponse{Status: st.Status, Query: st.Query, Error: st.Error, Rows: rows})
}

func (s *Server) export(c *gin.Context) {
	st := s.svc.State()
	c.Header("Content-Type", "application/x-ndjson")
	c.Status(http.StatusOK)
	if err := export.WriteNDJSON(c.Writer, st.Query, st.Rows()); err != nil {
		s.logger.Error("export failed", "error", err)
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ts := time.Now()
		c.Next()
		s.logger.Debug("req", "method", c.Request.Method, "path", c.Request.URL.Path, "code", c.Writer.Status(), "elapsed", time.Since(ts).Milliseconds())
	}
}
