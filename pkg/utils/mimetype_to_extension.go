package utils

import "strings"

// mimeTypeToExtension maps the raster formats the pipeline handles to their
// typical file extensions.
var mimeTypeToExtension = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// GetExtensionFromMimeType returns a common file extension for a given MIME type.
// If no specific extension is found, it defaults to ".bin".
func GetExtensionFromMimeType(mimeType string) string {
	// Remove charset if present (e.g., "image/jpeg; charset=utf-8")
	cleanedMimeType := strings.TrimSpace(strings.Split(mimeType, ";")[0])
	if ext, ok := mimeTypeToExtension[strings.ToLower(cleanedMimeType)]; ok {
		return ext
	}

	return ".bin"
}

// NormalizeMimeType lowercases a MIME type, strips parameters and folds known
// aliases so declared and detected types compare cleanly.
func NormalizeMimeType(mimeType string) string {
	cleaned := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if cleaned == "image/jpg" || cleaned == "image/pjpeg" {
		return "image/jpeg"
	}

	return cleaned
}
