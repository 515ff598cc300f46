package domain

// DocumentFormat is the format tag of a generated document
type DocumentFormat string

const (
	FormatJSON     DocumentFormat = "json"
	FormatMarkdown DocumentFormat = "markdown"
	FormatText     DocumentFormat = "txt"
)

// ContentType returns the MIME type used when delivering the document
func (f DocumentFormat) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatMarkdown:
		return "text/markdown"
	default:
		return "text/plain"
	}
}

// GeneratedDocument is one rendered output file
type GeneratedDocument struct {
	Filename     string         `json:"filename"`
	Content      string         `json:"content"`
	Format       DocumentFormat `json:"format"`
	Downloadable bool           `json:"downloadable"`
}
