// Package ident converts between the identifiers the tracker server stores and the
// text forms shown to people.
//
// Two schemes exist. Sample ids are 4-byte blobs rendered as display codes like
// "1Z-4I-6T". Every other entity uses a 16-byte UUID, delivered base64 encoded and shown
// in the canonical hyphenated layout. All conversions are lenient: input that does not
// have the expected shape is handed back unchanged instead of producing an error.
package ident

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// BlobSize is the width of a raw sample id. The last byte is stored but not rendered.
	BlobSize = 4

	groupCount = 3
	groupWidth = 2
	legacySize = 8
)

// FormatDisplayCode renders the first three bytes of raw as base-36 pairs.
func FormatDisplayCode(raw [BlobSize]byte) string {
	return formatTriplet([groupCount]byte{raw[0], raw[1], raw[2]})
}

// ParseDisplayCode reads an XX-XX-XX display code. The fourth byte is always zero.
// Groups are case-insensitive and must each fit in a byte.
func ParseDisplayCode(code string) ([BlobSize]byte, bool) {
	var raw [BlobSize]byte
	triplet, ok := parseTriplet(code)
	if !ok {
		return raw, false
	}
	copy(raw[:], triplet[:])
	return raw, true
}

// BlobToDisplayCode turns a base64 encoded 4-byte sample id into its display code.
func BlobToDisplayCode(blob string) string {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil || len(raw) != BlobSize {
		return blob
	}
	return BytesToDisplayCode(raw)
}

// BytesToDisplayCode is BlobToDisplayCode for raw bytes. It returns "" when raw is not
// exactly BlobSize bytes long.
func BytesToDisplayCode(raw []byte) string {
	if len(raw) != BlobSize {
		return ""
	}
	return FormatDisplayCode([BlobSize]byte(raw))
}

// DisplayCodeToBlob is the inverse of BlobToDisplayCode.
func DisplayCodeToBlob(code string) string {
	raw, ok := ParseDisplayCode(code)
	if !ok {
		return code
	}
	return base64.StdEncoding.EncodeToString(raw[:])
}

// Base64UUIDToString renders a base64 encoded 16-byte UUID in canonical form.
func Base64UUIDToString(s string) string {
	if s == "" {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return s
	}
	return id.String()
}

// UUIDStringToBase64 is the inverse of Base64UUIDToString.
func UUIDStringToBase64(s string) string {
	id, err := uuid.Parse(s)
	if err != nil {
		return s
	}
	return base64.StdEncoding.EncodeToString(id[:])
}

// UUIDBlobToString renders an 8 character base64 sample id as a display code.
//
// Deprecated: use BlobToDisplayCode.
func UUIDBlobToString(s string) string {
	if len(s) != legacySize {
		return s
	}
	head := s[:groupCount*groupWidth]
	if strings.ContainsAny(head, "=-") {
		return s
	}
	raw, err := base64.RawStdEncoding.DecodeString(head)
	if err != nil || len(raw) < groupCount {
		return s
	}
	return formatTriplet([groupCount]byte{raw[0], raw[1], raw[2]})
}

// UUIDStringToBlob turns a display code into the base64 text of its three bytes.
//
// Deprecated: use DisplayCodeToBlob, which keeps the 4-byte width the server stores.
func UUIDStringToBlob(s string) string {
	if len(s) != legacySize {
		return s
	}
	triplet, ok := parseTriplet(s)
	if !ok {
		return s
	}
	return base64.StdEncoding.EncodeToString(triplet[:])
}

func formatTriplet(b [groupCount]byte) string {
	var parts [groupCount]string
	for i, v := range b {
		part := strings.ToUpper(strconv.FormatUint(uint64(v), 36))
		if len(part) < groupWidth {
			part = "0" + part
		}
		parts[i] = part
	}
	return strings.Join(parts[:], "-")
}

func parseTriplet(code string) ([groupCount]byte, bool) {
	var out [groupCount]byte
	parts := strings.Split(code, "-")
	if len(parts) != groupCount {
		return out, false
	}
	for i, part := range parts {
		if len(part) != groupWidth {
			return out, false
		}
		v, err := strconv.ParseUint(part, 36, 8)
		if err != nil {
			return out, false
		}
		out[i] = byte(v)
	}
	return out, true
}
