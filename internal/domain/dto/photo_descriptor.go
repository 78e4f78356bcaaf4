package dto

// PhotoDescriptor is the success payload returned by upload and lookup
// endpoints.
type PhotoDescriptor struct {
	ID               string `json:"id"`
	URL              string `json:"url"`
	ThumbnailURL     string `json:"thumbnail_url"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Size             int64  `json:"size"`
	MIMEType         string `json:"mime_type"`
	PhotoType        string `json:"photo_type"`
	ModerationStatus string `json:"moderation_status"`
	PostID           string `json:"post_id,omitempty"`
	Uploaded         int64  `json:"uploaded"`
}

// PresignDescriptor is the payload of the presigned direct-to-storage shape.
type PresignDescriptor struct {
	ObjectKey   string `json:"object_key"`
	UploadURL   string `json:"upload_url"`
	ExpiresAt   int64  `json:"expires_at"`
	MaxFileSize int64  `json:"max_file_size"`
	ContentType string `json:"content_type"`
}

// ErrorResponse carries one machine-readable kind plus a human message.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
