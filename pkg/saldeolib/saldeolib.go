// Package saldeolib provides the public API for the Saldeo provider client.
//
// It exposes the signed-request client used to submit invoice documents and
// retrieve generated PDFs.
//
// Example usage:
//
//	client := saldeolib.NewClient(saldeolib.Config{
//	    Username:         "TWOJ_LOGIN",
//	    APIToken:         os.Getenv("SALDEO_API_TOKEN"),
//	    CompanyProgramID: "ABC123",
//	    BaseURL:          "https://saldeo.brainshare.pl",
//	})
//	resp, err := client.AddDocuments(ctx, manifest, attachments)
package saldeolib

import "github.com/rezonia/saldeo-connector/internal/saldeo"

// Re-export core types for public API
type (
	Client           = saldeo.Client
	Config           = saldeo.Config
	Option           = saldeo.Option
	Manifest         = saldeo.Manifest
	Document         = saldeo.Document
	Param            = saldeo.Param
	ProviderResponse = saldeo.ProviderResponse
)

// Re-export error types
type (
	SigningError           = saldeo.SigningError
	EncodingError          = saldeo.EncodingError
	TransportError         = saldeo.TransportError
	MalformedResponseError = saldeo.MalformedResponseError
	NotFoundError          = saldeo.NotFoundError
	ValidationError        = saldeo.ValidationError
)

// Re-export constructors and helpers
var (
	NewClient      = saldeo.NewClient
	WithHTTPClient = saldeo.WithHTTPClient
	WithTimeout    = saldeo.WithTimeout
	Signature      = saldeo.Signature
	Encode         = saldeo.Encode
	Pack           = saldeo.Pack
)

// DefaultTimeout bounds each provider call unless overridden.
const DefaultTimeout = saldeo.DefaultTimeout
