package dto

type UploadResponse struct {
	Message    string `json:"message"`
	FileName   string `json:"fileName"`
	UploadDate string `json:"uploadDate"`
	Status     string `json:"status"`
	Path       string `json:"path"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type URLResponse struct {
	URL string `json:"url"`
}
