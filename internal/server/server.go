// Package server exposes the connector over HTTP: document submission,
// invoice PDF retrieval, and payment report rendering.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/saldeo-connector/internal/payments"
	"github.com/rezonia/saldeo-connector/internal/report"
	"github.com/rezonia/saldeo-connector/internal/saldeo"
)

// Config holds server configuration
type Config struct {
	Address        string
	PaymentsURL    string
	ReportTemplate string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Debug          bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	provider *saldeo.Client
	payments *payments.Client
}

// NewServer creates a new API server around the provider client.
func NewServer(config *Config, provider *saldeo.Client, paymentsClient *payments.Client) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		provider: provider,
		payments: paymentsClient,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/documents", s.handleSubmitDocuments)
		// Invoice numbers contain slashes (FV-123/2025), so the number
		// travels as a query parameter rather than a path segment.
		v1.GET("/invoices/pdf", s.handleInvoicePDF)
		v1.GET("/payments/report", s.handlePaymentsReport)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// handleSubmitDocuments accepts a multipart upload of PDF files plus
// optional "year" and "month" fields, and submits them to the provider as
// one request.
func (s *Server) handleSubmitDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expected multipart form upload"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no files in upload"})
		return
	}

	year, month := submissionPeriod(c.PostForm("year"), c.PostForm("month"))

	manifest := &saldeo.Manifest{}
	attachments := make(map[string][]byte, len(files))
	for i, fh := range files {
		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("failed to read upload %q", fh.Filename)})
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("failed to read upload %q", fh.Filename)})
			return
		}

		id := fmt.Sprintf("file%d", i+1)
		manifest.Documents = append(manifest.Documents, saldeo.Document{
			Year:         year,
			Month:        month,
			Filename:     filepath.Base(fh.Filename),
			AttachmentID: id,
		})
		attachments[id] = data
	}

	resp, err := s.provider.AddDocuments(c.Request.Context(), manifest, attachments)
	if err != nil {
		status, body := errorStatus(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, SubmitResponse{
		Status:    resp.Status,
		OK:        resp.OK(),
		Documents: len(files),
		Response:  string(resp.Body),
	})
}

func (s *Server) handleInvoicePDF(c *gin.Context) {
	number := c.Query("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "number query parameter is required"})
		return
	}

	var pdf bytes.Buffer
	if err := s.provider.FetchInvoicePDF(c.Request.Context(), number, &pdf); err != nil {
		status, body := errorStatus(err)
		c.JSON(status, body)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", number+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

func (s *Server) handlePaymentsReport(c *gin.Context) {
	if s.config.PaymentsURL == "" {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "payments source not configured"})
		return
	}

	records, err := s.payments.Fetch(c.Request.Context(), s.config.PaymentsURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	out := filepath.Join(os.TempDir(), fmt.Sprintf("payments-report-%d.xlsx", time.Now().UnixNano()))
	defer os.Remove(out)

	suffix := c.DefaultQuery("suffix", time.Now().Format("2006/01"))
	if err := report.Fill(records, s.config.ReportTemplate, out, suffix); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.FileAttachment(out, "report.xlsx")
}

// errorStatus maps client error kinds onto HTTP statuses, keeping the
// provider's raw body visible to API consumers.
func errorStatus(err error) (int, ErrorResponse) {
	var vErr *saldeo.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	}
	var nfErr *saldeo.NotFoundError
	if errors.As(err, &nfErr) {
		return http.StatusNotFound, ErrorResponse{Error: err.Error()}
	}
	var tErr *saldeo.TransportError
	if errors.As(err, &tErr) {
		return http.StatusBadGateway, ErrorResponse{Error: err.Error(), Details: string(tErr.Body)}
	}
	var mErr *saldeo.MalformedResponseError
	if errors.As(err, &mErr) {
		return http.StatusBadGateway, ErrorResponse{Error: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: err.Error()}
}

func submissionPeriod(yearField, monthField string) (int, string) {
	now := time.Now()
	year := now.Year()
	month := now.Format("01")
	if yearField != "" {
		if _, err := fmt.Sscanf(yearField, "%d", &year); err != nil {
			year = now.Year()
		}
	}
	if monthField != "" {
		month = monthField
	}
	return year, month
}
