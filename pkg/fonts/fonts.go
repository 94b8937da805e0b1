// Package fonts provides the embedded font used by the native sinks.
//
// The Go Regular font ships with golang.org/x/image, so PDF and PNG output
// do not depend on fonts installed on the host.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font/gofont/goregular"
)

// RegularTTF returns the Go Regular TrueType data.
func RegularTTF() []byte {
	return goregular.TTF
}

// Cache for the base64-encoded font (computed once on first access).
var (
	ttfBase64     string
	ttfBase64Once sync.Once
)

// RegularTTFBase64 returns the TTF data as a base64 string for embedding in
// SVG @font-face rules. The result is cached after first computation.
func RegularTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}

// FontFamily is the CSS font-family name for the embedded font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for SVG viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Helvetica', 'Arial', sans-serif`
