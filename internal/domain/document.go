package domain

import "time"

// Document is an uploaded file record from GET /api/agent/{id}/documents.
type Document struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
}

// UploadedTime parses UploadedAt; zero when unparseable.
func (d Document) UploadedTime() time.Time {
	return parseSQLiteTime(d.UploadedAt)
}
