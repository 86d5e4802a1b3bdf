package saldeo

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
)

// Pack compresses data with gzip and encodes the result as standard Base64.
//
// This is the single transport encoding the provider accepts for both the
// XML command payload and binary attachments; both call sites share it so
// the two payload kinds can never diverge in encoding behavior.
func Pack(data []byte) (string, error) {
	var buf bytes.Buffer

	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", NewEncodingError("gzip write failed", err)
	}
	if err := w.Close(); err != nil {
		return "", NewEncodingError("gzip close failed", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
