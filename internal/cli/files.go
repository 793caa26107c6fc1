package cli

import (
	"encoding/base64"
	"net/http"
	"os"
	"strings"
)

// readDataURL loads a file as a data: URL and reports its detected MIME type.
func readDataURL(path string) (dataURL, mime string, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	mime, _, _ = strings.Cut(http.DetectContentType(b), ";")
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), mime, nil
}
