package education

import (
	"errors"
	"path/filepath"
	"strings"
)

// MaxAudioSize is the upload ceiling for word pronunciation files.
const MaxAudioSize = 1 << 20

var allowedAudioMIMETypes = map[string]bool{
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/ogg":  true,
	"audio/m4a":  true,
	"audio/mpeg": true,
}

var allowedAudioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
	".m4a": true,
}

var (
	ErrAudioTooLarge   = errors.New("Audio file must be less than 1MB")
	ErrAudioBadFormat  = errors.New("Only MP3, WAV, OGG and M4A files are supported")
	ErrAudioNoFilename = errors.New("Audio file has no name")
)

// ValidateAudio checks size and format before any bytes leave the server.
// Either a recognised MIME type or a recognised extension is enough; browsers
// are inconsistent about which one they report.
func ValidateAudio(filename, mimeType string, size int64) error {
	if size > MaxAudioSize {
		return ErrAudioTooLarge
	}
	if filename == "" {
		return ErrAudioNoFilename
	}
	if allowedAudioMIMETypes[strings.ToLower(mimeType)] {
		return nil
	}
	if allowedAudioExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil
	}
	return ErrAudioBadFormat
}
