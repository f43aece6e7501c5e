package education

import "testing"

func TestValidateAudioSizeBoundary(t *testing.T) {
	if err := ValidateAudio("word.mp3", "audio/mpeg", MaxAudioSize); err != nil {
		t.Errorf("exactly 1 MiB should pass, got %v", err)
	}
	if err := ValidateAudio("word.mp3", "audio/mpeg", MaxAudioSize+1); err != ErrAudioTooLarge {
		t.Errorf("one byte over should fail with ErrAudioTooLarge, got %v", err)
	}
}

func TestValidateAudioMIMETypes(t *testing.T) {
	for _, mime := range []string{"audio/mp3", "audio/wav", "audio/ogg", "audio/m4a", "audio/mpeg"} {
		if err := ValidateAudio("clip.bin", mime, 100); err != nil {
			t.Errorf("MIME %q should pass regardless of extension, got %v", mime, err)
		}
	}
}

func TestValidateAudioExtensionFallback(t *testing.T) {
	// Browsers sometimes send application/octet-stream; the extension
	// alone has to be enough.
	for _, name := range []string{"clip.mp3", "clip.WAV", "clip.ogg", "clip.m4a"} {
		if err := ValidateAudio(name, "application/octet-stream", 100); err != nil {
			t.Errorf("extension of %q should pass, got %v", name, err)
		}
	}
}

func TestValidateAudioRejectsUnknownFormat(t *testing.T) {
	if err := ValidateAudio("track.flac", "audio/flac", 100); err != ErrAudioBadFormat {
		t.Errorf("flac should be rejected, got %v", err)
	}
	if err := ValidateAudio("doc.pdf", "application/pdf", 100); err != ErrAudioBadFormat {
		t.Errorf("pdf should be rejected, got %v", err)
	}
}

func TestValidateAudioSizeCheckedFirst(t *testing.T) {
	// An oversized file must be rejected for size even when the format
	// is also wrong, so the admin fixes the real problem first.
	if err := ValidateAudio("track.flac", "audio/flac", MaxAudioSize+1); err != ErrAudioTooLarge {
		t.Errorf("expected ErrAudioTooLarge, got %v", err)
	}
}
