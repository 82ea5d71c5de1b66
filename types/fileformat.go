package types

import (
	"path/filepath"
	"strings"
)

// FileFormat identifies the concrete file type of an uploaded material.
type FileFormat string

const (
	FormatText       FileFormat = "TEXT"
	FormatPDF        FileFormat = "PDF"
	FormatWord       FileFormat = "WORD"
	FormatPowerPoint FileFormat = "POWERPOINT"
	FormatPNG        FileFormat = "IMAGE_PNG"
	FormatJPG        FileFormat = "IMAGE_JPG"
	FormatGIF        FileFormat = "IMAGE_GIF"
	FormatSVG        FileFormat = "IMAGE_SVG"
	FormatMP4        FileFormat = "VIDEO_MP4"
	FormatWebM       FileFormat = "VIDEO_WEBM"
	FormatAVI        FileFormat = "VIDEO_AVI"
	FormatMP3        FileFormat = "AUDIO_MP3"
	FormatWAV        FileFormat = "AUDIO_WAV"
	FormatZIP        FileFormat = "ZIP"
	FormatJSON       FileFormat = "JSON"
	FormatHTML       FileFormat = "HTML"
	FormatMarkdown   FileFormat = "MARKDOWN"
)

// FileFormatInfo is one row of the closed format table.
type FileFormatInfo struct {
	DisplayName string
	MimeType    string
	Extension   string
}

var fileFormats = map[FileFormat]FileFormatInfo{
	FormatText:       {"Text", "text/plain", ".txt"},
	FormatPDF:        {"PDF Document", "application/pdf", ".pdf"},
	FormatWord:       {"Word Document", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ".docx"},
	FormatPowerPoint: {"PowerPoint Presentation", "application/vnd.openxmlformats-officedocument.presentationml.presentation", ".pptx"},
	FormatPNG:        {"PNG Image", "image/png", ".png"},
	FormatJPG:        {"JPEG Image", "image/jpeg", ".jpg"},
	FormatGIF:        {"GIF Image", "image/gif", ".gif"},
	FormatSVG:        {"SVG Image", "image/svg+xml", ".svg"},
	FormatMP4:        {"MP4 Video", "video/mp4", ".mp4"},
	FormatWebM:       {"WebM Video", "video/webm", ".webm"},
	FormatAVI:        {"AVI Video", "video/x-msvideo", ".avi"},
	FormatMP3:        {"MP3 Audio", "audio/mpeg", ".mp3"},
	FormatWAV:        {"WAV Audio", "audio/wav", ".wav"},
	FormatZIP:        {"ZIP Archive", "application/zip", ".zip"},
	FormatJSON:       {"JSON Data", "application/json", ".json"},
	FormatHTML:       {"HTML Document", "text/html", ".html"},
	FormatMarkdown:   {"Markdown", "text/markdown", ".md"},
}

// Info returns the display name, MIME type, and extension of the
// format. Unknown formats report the TEXT row.
func (f FileFormat) Info() FileFormatInfo {
	if info, ok := fileFormats[f]; ok {
		return info
	}
	return fileFormats[FormatText]
}

// MimeType returns the canonical MIME type of the format.
func (f FileFormat) MimeType() string {
	return f.Info().MimeType
}

func (f FileFormat) IsImage() bool {
	return f == FormatPNG || f == FormatJPG || f == FormatGIF || f == FormatSVG
}

func (f FileFormat) IsVideo() bool {
	return f == FormatMP4 || f == FormatWebM || f == FormatAVI
}

func (f FileFormat) IsAudio() bool {
	return f == FormatMP3 || f == FormatWAV
}

func (f FileFormat) IsDocument() bool {
	return f == FormatPDF || f == FormatWord || f == FormatPowerPoint
}

// ParseFileFormat resolves a format name case-insensitively,
// defaulting to TEXT on no match.
func ParseFileFormat(raw string) FileFormat {
	normalized := FileFormat(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := fileFormats[normalized]; ok {
		return normalized
	}
	return FormatText
}

// FileFormatFromMimeType resolves a MIME type against the format
// table, defaulting to TEXT on no match.
func FileFormatFromMimeType(mimeType string) FileFormat {
	for format, info := range fileFormats {
		if info.MimeType == mimeType {
			return format
		}
	}
	return FormatText
}

// FileFormatFromExtension resolves a filename's extension against the
// format table, defaulting to TEXT on no match.
func FileFormatFromExtension(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return FormatText
	}
	for format, info := range fileFormats {
		if info.Extension == ext {
			return format
		}
	}
	return FormatText
}
