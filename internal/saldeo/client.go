// Package saldeo implements the Saldeo invoicing provider's signed HTTP/XML
// protocol: canonical parameter encoding, MD5 request signatures, gzip+Base64
// payload packing, multipart document submission, and PDF resolution.
package saldeo

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	addDocumentPath = "/api/xml/1.0/document/add"
	invoiceListPath = "/api/xml/1.8/invoice/list"

	// PolicySaldeo selects provider-side numbering on listing queries.
	PolicySaldeo = "SALDEO"

	// DefaultTimeout bounds each network round-trip. The provider contract
	// specifies none; timeouts surface as TransportError.
	DefaultTimeout = 30 * time.Second
)

// Config carries the provider credentials and endpoint. Read-only after
// construction; the client holds no other durable state between calls.
type Config struct {
	Username         string
	APIToken         string
	CompanyProgramID string
	BaseURL          string
}

// Client talks to the provider. Safe for concurrent use: every call builds
// fresh request state, and request identifier issuance is serialized.
type Client struct {
	config     Config
	httpClient *http.Client
	reqIDs     requestIDGenerator
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests, custom TLS).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-call timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a provider client from immutable configuration.
func NewClient(config Config, opts ...Option) *Client {
	c := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddDocuments submits a manifest and its binary attachments in a single
// multipart POST. The manifest/attachment correlation is validated before
// any network I/O; exactly one request is sent, with no retry. The raw
// provider body is always returned, with STATUS parsed best-effort.
func (c *Client) AddDocuments(ctx context.Context, manifest *Manifest, attachments map[string][]byte) (*ProviderResponse, error) {
	if err := manifest.Validate(attachments); err != nil {
		return nil, err
	}

	manifestXML, err := manifest.Encode()
	if err != nil {
		return nil, NewEncodingError("manifest marshal failed", err)
	}
	command, err := Pack(manifestXML)
	if err != nil {
		return nil, err
	}

	reqID := c.reqIDs.next()
	sig := Signature([]Param{
		{Key: "req_id", Value: reqID},
		{Key: "username", Value: c.config.Username},
	}, c.config.APIToken)

	var body strings.Builder
	form := multipart.NewWriter(&body)
	fields := []Param{
		{Key: "username", Value: c.config.Username},
		{Key: "req_id", Value: reqID},
		{Key: "req_sig", Value: sig},
		{Key: "company_program_id", Value: c.config.CompanyProgramID},
		{Key: "command", Value: command},
	}
	for _, f := range fields {
		if err := form.WriteField(f.Key, f.Value); err != nil {
			return nil, NewEncodingError("multipart field "+f.Key, err)
		}
	}
	for id, data := range attachments {
		packed, err := Pack(data)
		if err != nil {
			return nil, err
		}
		if err := form.WriteField("attmnt_"+id, packed); err != nil {
			return nil, NewEncodingError("multipart field attmnt_"+id, err)
		}
	}
	if err := form.Close(); err != nil {
		return nil, NewEncodingError("multipart close failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+addDocumentPath, strings.NewReader(body.String()))
	if err != nil {
		return nil, NewTransportError("document/add", 0, nil, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewTransportError("document/add", 0, nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewTransportError("document/add", resp.StatusCode, nil, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewTransportError("document/add", resp.StatusCode, raw, nil)
	}

	result := &ProviderResponse{Body: raw}
	var parsed statusResponse
	if err := xml.Unmarshal(raw, &parsed); err == nil {
		result.Status = parsed.Status
	}
	return result, nil
}

// FetchInvoicePDF resolves the generated PDF for an invoice number via a
// signed listing query, then streams the artifact bytes to sink. Returns
// NotFoundError when the listing has no matching entry; the download step
// is not attempted in that case.
func (c *Client) FetchInvoicePDF(ctx context.Context, number string, sink io.Writer) error {
	pdfURL, err := c.resolvePDFURL(ctx, number)
	if err != nil {
		return err
	}

	// The artifact reference is a direct, unsigned download link.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return NewTransportError("invoice/pdf", 0, nil, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewTransportError("invoice/pdf", 0, nil, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return NewTransportError("invoice/pdf", resp.StatusCode, raw, nil)
	}
	if _, err := io.Copy(sink, resp.Body); err != nil {
		return NewTransportError("invoice/pdf", resp.StatusCode, nil, err)
	}
	return nil
}

func (c *Client) resolvePDFURL(ctx context.Context, number string) (string, error) {
	reqID := c.reqIDs.next()
	params := []Param{
		{Key: "company_program_id", Value: c.config.CompanyProgramID},
		{Key: "policy", Value: PolicySaldeo},
		{Key: "req_id", Value: reqID},
		{Key: "username", Value: c.config.Username},
	}
	sig := Signature(params, c.config.APIToken)

	query := url.Values{}
	for _, p := range params {
		query.Set(p.Key, p.Value)
	}
	query.Set("req_sig", sig)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+invoiceListPath+"?"+query.Encode(), nil)
	if err != nil {
		return "", NewTransportError("invoice/list", 0, nil, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", NewTransportError("invoice/list", 0, nil, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewTransportError("invoice/list", resp.StatusCode, nil, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", NewTransportError("invoice/list", resp.StatusCode, raw, nil)
	}

	var listing invoiceList
	if err := xml.Unmarshal(raw, &listing); err != nil {
		return "", &MalformedResponseError{Operation: "invoice/list", Cause: err}
	}
	for _, inv := range listing.Invoices {
		if inv.Number == number {
			if inv.Source == "" {
				return "", &MalformedResponseError{
					Operation: "invoice/list",
					Cause:     fmt.Errorf("entry %q carries no download reference", number),
				}
			}
			return inv.Source, nil
		}
	}
	return "", &NotFoundError{Number: number}
}
