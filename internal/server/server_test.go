package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/saldeo-connector/internal/payments"
	"github.com/rezonia/saldeo-connector/internal/saldeo"
	"github.com/rezonia/saldeo-connector/internal/server"
)

// newProviderStub runs a fake Saldeo endpoint: document/add always answers
// OK, invoice/list knows one invoice with a downloadable PDF.
func newProviderStub(t *testing.T, pdfContent []byte) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/api/xml/1.0/document/add", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.NotEmpty(t, r.FormValue("req_sig"))
		assert.NotEmpty(t, r.FormValue("command"))
		w.Write([]byte(`<?xml version="1.0"?><RESPONSE><STATUS>OK</STATUS></RESPONSE>`))
	})
	mux.HandleFunc("/api/xml/1.8/invoice/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?>
<RESPONSE><STATUS>OK</STATUS><INVOICES><INVOICE>
<NUMBER>FV-123/2025</NUMBER><SOURCE>%s/files/invoice123.pdf</SOURCE>
</INVOICE></INVOICES></RESPONSE>`, srv.URL)
	})
	mux.HandleFunc("/files/invoice123.pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pdfContent)
	})
	return srv
}

func newTestServer(t *testing.T, providerURL, paymentsURL string) *server.Server {
	t.Helper()
	provider := saldeo.NewClient(saldeo.Config{
		Username:         "TWOJ_LOGIN",
		APIToken:         "SEKRETNY_TOKEN",
		CompanyProgramID: "ABC123",
		BaseURL:          providerURL,
	})
	return server.NewServer(&server.Config{
		Address:     ":8080",
		PaymentsURL: paymentsURL,
		Debug:       true,
	}, provider, payments.NewClient())
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, "http://unused", "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func uploadRequest(t *testing.T, files map[string][]byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := form.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, form.WriteField("year", "2024"))
	require.NoError(t, form.WriteField("month", "08"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	return req
}

func TestSubmitDocumentsEndpoint(t *testing.T) {
	provider := newProviderStub(t, nil)
	srv := newTestServer(t, provider.URL, "")

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, uploadRequest(t, map[string][]byte{
		"faktura.pdf": []byte("%PDF-1.4 body"),
	}))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var response server.SubmitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.OK)
	assert.Equal(t, "OK", response.Status)
	assert.Equal(t, 1, response.Documents)
	assert.Contains(t, response.Response, "<STATUS>OK</STATUS>")
}

func TestSubmitDocumentsEndpoint_NoFiles(t *testing.T) {
	srv := newTestServer(t, "http://unused", "")

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, uploadRequest(t, nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoicePDFEndpoint(t *testing.T) {
	pdfContent := []byte("%PDF-1.4 rendered invoice")
	provider := newProviderStub(t, pdfContent)
	srv := newTestServer(t, provider.URL, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/pdf?number=FV-123%2F2025", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, pdfContent, w.Body.Bytes())
}

func TestInvoicePDFEndpoint_NotFound(t *testing.T) {
	provider := newProviderStub(t, nil)
	srv := newTestServer(t, provider.URL, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/pdf?number=FV-999%2F2025", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentsReportEndpoint(t *testing.T) {
	paymentsStub := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"guid":"a1","created":"2025-01-10T12:30:00Z","finished":true,
			"invoiceData":{"invoiceRequested":true,"companyName":"ACME","invoiceEmail":"a@b.pl",
			"subscriptionPlan":{"value":"100.00","planName":"Pro"}}}]`))
	}))
	defer paymentsStub.Close()

	srv := newTestServer(t, "http://unused", paymentsStub.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/report?suffix=FV/2025", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue("Faktury", "B2")
	require.NoError(t, err)
	assert.Equal(t, "FV/2025", v)
}

func TestPaymentsReportEndpoint_Unconfigured(t *testing.T) {
	srv := newTestServer(t, "http://unused", "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/report", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
