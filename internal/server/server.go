package server

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-client/internal/api"
	"github.com/rezonia/invoice-client/internal/client"
	"github.com/rezonia/invoice-client/internal/model"
	"github.com/rezonia/invoice-client/internal/pdf"
	"github.com/rezonia/invoice-client/internal/view"
)

// ServiceName is reported by the health endpoint
const ServiceName = "invoice-client"

// Config holds server configuration
type Config struct {
	Address      string
	APIURL       string
	Timeout      time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
	Logger       *zap.Logger
}

// Server is the web front end. It renders the invoice page and relays the
// lookup and PDF endpoints of the invoice API under the same origin.
type Server struct {
	config *Config
	router *gin.Engine
	api    *api.Client
	logger *zap.Logger
}

// NewServer creates a new web front end
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var apiOpts []api.ClientOption
	apiOpts = append(apiOpts, api.WithLogger(logger))
	if config.Timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(config.Timeout))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	s := &Server{
		config: config,
		router: router,
		api:    api.NewClient(config.APIURL, apiOpts...),
		logger: logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)

	// Same paths as the invoice API so the page works against either
	apiGroup := s.router.Group("/api")
	{
		apiGroup.GET("/obtener-factura/:numero", s.handleLookup)
		apiGroup.GET("/generar-pdf/:numero", s.handlePDF)
		apiGroup.GET("/info/:numero", s.handleInfo)
		apiGroup.GET("/exportar-excel/:numero", s.handleXLSX)
	}
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", zap.String("address", s.config.Address))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: ServiceName,
		Time:    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleIndex renders the page. With ?numero= it runs the lookup first and
// renders the result the way the interactive client would.
func (s *Server) handleIndex(c *gin.Context) {
	numero, submitted := c.GetQuery("numero")

	ctrl := client.New(s.api, nil, client.WithLogger(s.logger))
	if submitted {
		// failures are already on the page as a notice
		_ = ctrl.FetchAndRender(c.Request.Context(), numero)
	}
	state := ctrl.State()
	ctrl.Dismiss()

	page := state.Page()
	page.Input = strings.TrimSpace(numero)

	var buf bytes.Buffer
	if err := view.RenderHTML(&buf, page); err != nil {
		s.logger.Error("render page", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to render page"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleLookup(c *gin.Context) {
	numero := c.Param("numero")

	raw, err := s.api.FetchInvoiceJSON(c.Request.Context(), numero)
	if err != nil {
		s.upstreamError(c, "invoice lookup failed", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func (s *Server) handlePDF(c *gin.Context) {
	numero := c.Param("numero")

	data, err := s.api.FetchPDF(c.Request.Context(), numero)
	if err != nil {
		s.upstreamError(c, "pdf generation failed", err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": view.DownloadFilename(numero),
	}))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (s *Server) handleXLSX(c *gin.Context) {
	numero := c.Param("numero")

	inv, err := s.api.FetchInvoice(c.Request.Context(), numero)
	if err != nil {
		s.upstreamError(c, "invoice lookup failed", err)
		return
	}

	var buf bytes.Buffer
	if err := view.RenderXLSX(&buf, inv); err != nil {
		s.logger.Error("render workbook", zap.String("invoice_number", numero), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to write Excel file"})
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": view.XLSXFilename(numero),
	}))
	c.Data(http.StatusOK, view.XLSXContentType, buf.Bytes())
}

func (s *Server) handleInfo(c *gin.Context) {
	numero := c.Param("numero")

	data, err := s.api.FetchPDF(c.Request.Context(), numero)
	if err != nil {
		s.upstreamError(c, "pdf generation failed", err)
		return
	}

	info, err := pdf.Inspect(data)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "upstream returned an invalid PDF",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, InfoResponse{
		Filename: view.DownloadFilename(numero),
		Size:     info.Size,
		Pages:    info.Pages,
		Version:  info.Version,
	})
}

// upstreamError answers 502 for any failure of the invoice API
func (s *Server) upstreamError(c *gin.Context, message string, err error) {
	resp := ErrorResponse{Error: message}

	var reqErr *model.RequestError
	if errors.As(err, &reqErr) {
		resp.UpstreamStatus = reqErr.StatusCode
	}

	s.logger.Warn(message,
		zap.String("invoice_number", c.Param("numero")),
		zap.Error(err))
	c.JSON(http.StatusBadGateway, resp)
}
