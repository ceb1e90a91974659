package helpers

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

const dataURLBase64Marker = ";base64,"

// IsHiddenName reports whether a file name is a dotfile. Hidden entries
// are dropped during ingestion before any decoding happens.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".")
}

// IsImageMediaType reports whether a media type belongs to the image
// family. Parameters such as "; charset=..." are ignored.
func IsImageMediaType(mediaType string) bool {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	return strings.HasPrefix(mt, "image/")
}

// MediaTypeForName resolves a media type from a file name's extension.
// Returns "" when the extension is unknown.
func MediaTypeForName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	mediaType := mime.TypeByExtension(ext)
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.TrimSpace(mediaType)
}

// EncodeDataURL packs raw bytes into a base64 data URL.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + dataURLBase64Marker + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL unpacks a base64 data URL into its media type and raw
// bytes. Only the base64 form is accepted.
func DecodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, fmt.Errorf("missing data: prefix")
	}
	marker := strings.Index(dataURL, dataURLBase64Marker)
	if marker < 0 {
		return "", nil, fmt.Errorf("missing base64 marker")
	}
	mediaType := dataURL[len("data:"):marker]
	payload := dataURL[marker+len(dataURLBase64Marker):]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode base64 payload: %w", err)
	}
	return mediaType, data, nil
}

// SHA256Hex returns the hex-encoded SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// WriteFileAtomic writes data to path through a temp file and rename,
// so readers never observe a partially written artifact.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
