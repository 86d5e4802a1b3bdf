package saldeo

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
)

// Param is a single request parameter included in signature computation.
type Param struct {
	Key   string
	Value string
}

// Signature computes the provider's req_sig for a set of request parameters.
//
// Per the provider's contract:
//  1. Parameters with empty values are excluded.
//  2. The rest are sorted by key, byte-wise ascending.
//  3. Keys and values are concatenated directly, with no separators.
//  4. The concatenation is canonically encoded (Encode).
//  5. The shared API token is appended, unencoded.
//  6. The MD5 of the UTF-8 bytes is rendered as lowercase hex.
//
// An all-empty parameter set is valid and signs the token alone.
func Signature(params []Param, token string) string {
	kept := make([]Param, 0, len(params))
	for _, p := range params {
		if p.Value == "" {
			continue
		}
		kept = append(kept, p)
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Key < kept[j].Key })

	var concat strings.Builder
	for _, p := range kept {
		concat.WriteString(p.Key)
		concat.WriteString(p.Value)
	}

	sum := md5.Sum([]byte(Encode(concat.String()) + token))
	return hex.EncodeToString(sum[:])
}
