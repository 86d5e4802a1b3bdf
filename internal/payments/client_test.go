package payments_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/saldeo-connector/internal/payments"
)

const sessionsJSON = `[
  {
    "guid": "a1b2",
    "created": "2025-01-10T12:30:00Z",
    "finished": true,
    "createdBy": {"displayName": "Jan Kowalski"},
    "invoiceData": {
      "city": "Warszawa",
      "nip": "5252248481",
      "street": "Prosta 1",
      "country": "Polska",
      "companyName": "ACME Sp. z o.o.",
      "invoiceEmail": "faktury@acme.pl",
      "postCode": "00-001",
      "invoiceRequested": true,
      "subscriptionPlan": {"value": "499.00", "planName": "Pro"}
    }
  },
  {
    "guid": "c3d4",
    "created": "2025-01-11T09:00:00Z",
    "finished": true,
    "invoiceData": {
      "invoiceEmail": "anon@example.com",
      "invoiceRequested": false
    }
  },
  {
    "guid": "e5f6",
    "created": "2025-01-12T09:00:00Z",
    "finished": false
  }
]`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sessionsJSON))
	}))
	defer srv.Close()

	client := payments.NewClient()
	records, err := client.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	// Unfinished sessions are dropped.
	require.Len(t, records, 2)

	full := records[0]
	assert.Equal(t, "a1b2", full.GUID)
	assert.True(t, full.InvoiceRequested)
	assert.Equal(t, "ACME Sp. z o.o.", full.CompanyName)
	assert.Equal(t, "5252248481", full.NIP)
	assert.Equal(t, "faktury@acme.pl", full.Email)
	assert.Equal(t, "Pro", full.ProductName)
	assert.Equal(t, "499.00", full.Amount.StringFixed(2))
	assert.Equal(t, 1, full.Quantity)
	assert.Equal(t, "Jan Kowalski", full.CreatedBy)

	// Optional sections absent on the wire become zero values, not panics.
	sparse := records[1]
	assert.False(t, sparse.InvoiceRequested)
	assert.Empty(t, sparse.CompanyName)
	assert.Empty(t, sparse.CreatedBy)
	assert.True(t, sparse.Amount.IsZero())
}

func TestFetch_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := payments.NewClient().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestFetch_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := payments.NewClient().Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
