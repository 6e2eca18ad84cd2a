// Package gallery exposes the photo-gallery backend operations on top of
// the apiclient pipeline.
package gallery

// Photo is one stored image.
type Photo struct {
	ID           string   `json:"id"`
	URL          string   `json:"url"`
	ThumbnailURL string   `json:"thumbnailUrl,omitempty"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	UploadDate   string   `json:"uploadDate,omitempty"`
	Size         string   `json:"size,omitempty"`
	Width        int      `json:"width,omitempty"`
	Height       int      `json:"height,omitempty"`
	CategoryID   *string  `json:"categoryId"`
	Tags         []string `json:"tags"`
}

// Category groups photos.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PhotoPage is one page of a photo listing. Total counts every photo that
// matched the filters.
type PhotoPage struct {
	Photos []Photo `json:"photos"`
	Total  int     `json:"total"`
}

// PhotoQuery filters a listing. Page starts at 1. Tags are ANDed.
type PhotoQuery struct {
	Page       int
	Limit      int
	CategoryID string
	Tags       []string
}

// PhotoUpdate carries the fields to change; nil fields are left untouched.
type PhotoUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token string `json:"token"`
}

// RegisterResult is returned by a successful registration.
type RegisterResult struct {
	Message string `json:"message"`
}

type verifyResult struct {
	Valid bool `json:"valid"`
}

// UploadResult is the backend's answer to an upload.
type UploadResult struct {
	Message string `json:"message"`
	FileID  string `json:"fileId"`
}

// Progress reports upload progress. Total is 0 and Percent -1 when the size
// is unknown.
type Progress struct {
	Loaded  int64
	Total   int64
	Percent int
}

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}
