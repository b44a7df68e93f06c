package dto

// UploadResult is the outcome of a single two-phase media publish.
type UploadResult struct {
	URL string `json:"url"`
}

// BatchUploadError pairs a failed file with its reason.
type BatchUploadError struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// BatchUploadResult reports per-file outcomes; a bad file never fails the
// whole batch.
type BatchUploadResult struct {
	Items  []string           `json:"items"`
	Errors []BatchUploadError `json:"errors,omitempty"`
}
