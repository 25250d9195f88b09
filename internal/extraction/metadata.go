package extraction

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DocumentInfo describes an uploaded document without its content.
type DocumentInfo struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	Hash        string    `json:"hash"` // SHA256 hex digest
	UploadedAt  time.Time `json:"uploaded_at"`
}

// NewDocumentInfo fingerprints data and stamps it with now.
func NewDocumentInfo(filename string, format Format, data []byte, now time.Time) DocumentInfo {
	return DocumentInfo{
		Filename:    filename,
		ContentType: format.ContentType(),
		Size:        len(data),
		Hash:        computeHash(data),
		UploadedAt:  now.UTC(),
	}
}

func computeHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
