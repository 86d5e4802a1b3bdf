package saldeo

import "encoding/xml"

// ProviderResponse is the result of a document submission.
//
// The provider reports success and failure inside its XML body, not via
// HTTP status. Body is always the raw response for caller-side
// interpretation; Status is parsed best-effort and empty when the body is
// not well-formed XML.
type ProviderResponse struct {
	Status string
	Body   []byte
}

// OK reports whether the provider's parsed status, if any, signals success.
func (r *ProviderResponse) OK() bool {
	return r.Status == "OK"
}

type statusResponse struct {
	XMLName xml.Name `xml:"RESPONSE"`
	Status  string   `xml:"STATUS"`
}

// invoiceList is the provider's invoice/list response, modeled only as far
// as PDF resolution needs it.
type invoiceList struct {
	XMLName  xml.Name       `xml:"RESPONSE"`
	Status   string         `xml:"STATUS"`
	Invoices []invoiceEntry `xml:"INVOICES>INVOICE"`
}

type invoiceEntry struct {
	Number string `xml:"NUMBER"`
	Source string `xml:"SOURCE"`
}
