package models

// ProcessResult is the outcome of normalizing a single sticker
type ProcessResult struct {
	Success  bool   `json:"success" yaml:"success"`
	Index    int    `json:"index" yaml:"index"`
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Width    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchResult aggregates the results of one batch run
type BatchResult struct {
	SuccessCount   int             `json:"success_count" yaml:"success_count"`
	FailedCount    int             `json:"failed_count" yaml:"failed_count"`
	Total          int             `json:"total" yaml:"total"`
	Results        []ProcessResult `json:"results" yaml:"results"`
	MainPath       string          `json:"main_path,omitempty" yaml:"main_path,omitempty"`
	TabPath        string          `json:"tab_path,omitempty" yaml:"tab_path,omitempty"`
	ThumbnailError string          `json:"thumbnail_error,omitempty" yaml:"thumbnail_error,omitempty"`
	OutputDir      string          `json:"output_dir" yaml:"output_dir"`
}

// FirstSuccess returns the earliest successful result in input order
func (b *BatchResult) FirstSuccess() (ProcessResult, bool) {
	for _, r := range b.Results {
		if r.Success {
			return r, true
		}
	}
	return ProcessResult{}, false
}
