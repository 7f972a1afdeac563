package imaging

import (
	"bytes"
	"errors"
	"testing"
)

func TestDataURLRoundTrip(t *testing.T) {
	data := []byte{0xff, 0xd8, 0xff, 0x00, 0x10}
	url := EncodeDataURL("image/jpeg", data)

	if url != "data:image/jpeg;base64,/9j/ABA=" {
		t.Errorf("unexpected data url %q", url)
	}

	got, mime, err := DecodeDataURL(url)
	if err != nil {
		t.Fatalf("DecodeDataURL: %v", err)
	}
	if mime != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %q", mime)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("expected %v, got %v", data, got)
	}
}

func TestDecodeDataURLInvalid(t *testing.T) {
	inputs := []string{
		"",
		"/uploads/shirt.jpg",
		"data:image/png;base64",
		"data:image/png,plain-text-payload",
		"data:image/png;base64,***",
	}
	for _, in := range inputs {
		if _, _, err := DecodeDataURL(in); !errors.Is(err, ErrInvalidDataURL) {
			t.Errorf("DecodeDataURL(%q): expected ErrInvalidDataURL, got %v", in, err)
		}
	}
}
