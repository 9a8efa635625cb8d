package ingest

import (
	"mime"
	"path/filepath"
	"strings"
)

// Accepts applies an HTML accept filter (".png, image/*, application/pdf") to
// h. An empty filter accepts everything.
func Accepts(accept string, h Handle) bool {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return true
	}
	if h == nil {
		return false
	}

	ext := strings.ToLower(filepath.Ext(h.Name()))
	mediaType := strings.ToLower(strings.TrimSpace(h.ContentType()))
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}

	for _, token := range strings.Split(accept, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		switch {
		case token == "":
			continue
		case strings.HasPrefix(token, "."):
			if ext == token {
				return true
			}
		case strings.HasSuffix(token, "/*"):
			if mediaType != "" && strings.HasPrefix(mediaType, strings.TrimSuffix(token, "*")) {
				return true
			}
		default:
			if mediaType == token {
				return true
			}
		}
	}
	return false
}
