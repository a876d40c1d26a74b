package codec

import (
	"bytes"
	"encoding/base64"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// extension fallbacks for types net/http does not sniff and the host mime
// table may not list
var imageExtensions = map[string]string{
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// DetectMIME guesses the MIME type of data. Content sniffing wins; the
// filename extension is consulted when the content is not recognised.
func DetectMIME(data []byte, filename string) string {
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return "image/tiff"
	}

	sniffed := http.DetectContentType(data)
	if t, _, err := mime.ParseMediaType(sniffed); err == nil {
		sniffed = t
	}
	if IsImageMIME(sniffed) {
		return sniffed
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := imageExtensions[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}
	return sniffed
}

// IsImageMIME reports whether t names an image media type.
func IsImageMIME(t string) bool {
	return strings.HasPrefix(t, "image/")
}

// DataURI renders data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	var sb strings.Builder
	sb.Grow(len("data:;base64,") + len(mimeType) + base64.StdEncoding.EncodedLen(len(data)))
	sb.WriteString("data:")
	sb.WriteString(mimeType)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String()
}
