package util

import (
	"bytes"
	"testing"
)

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantExt  string
		wantType string
		wantData []byte
		wantErr  bool
	}{
		{"png", "data:image/png;base64,ZmFrZS1wbmc=", "png", "image/png", []byte("fake-png"), false},
		{"jpg normalised", "data:image/jpg;base64,ZmFrZS1wbmc=", "jpeg", "image/jpeg", []byte("fake-png"), false},
		{"missing padding", "data:image/gif;base64,ZmFrZS1wbmc", "gif", "image/gif", []byte("fake-png"), false},
		{"surrounding spaces", "  data:image/png;base64,ZmFrZS1wbmc=\n", "png", "image/png", []byte("fake-png"), false},
		{"plain string", "hello", "", "", nil, true},
		{"no comma", "data:image/png;base64", "", "", nil, true},
		{"not base64 encoding", "data:image/png,raw", "", "", nil, true},
		{"not an image", "data:text/plain;base64,ZmFrZS1wbmc=", "", "", nil, true},
		{"bad payload", "data:image/png;base64,@@@", "", "", nil, true},
		{"empty payload", "data:image/png;base64,", "", "", nil, true},
		{"path in subtype", "data:image/x/../../../pwned;base64,aGVsbG8=", "", "", nil, true},
		{"unsupported subtype", "data:image/svg+xml;base64,aGVsbG8=", "", "", nil, true},
		{"upper-case subtype", "data:IMAGE/PNG;base64,ZmFrZS1wbmc=", "png", "image/png", []byte("fake-png"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := DecodeDataURI(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", img)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Ext != tt.wantExt || img.ContentType != tt.wantType || !bytes.Equal(img.Data, tt.wantData) {
				t.Errorf("got ext=%q type=%q data=%q", img.Ext, img.ContentType, img.Data)
			}
		})
	}
}

func TestImageFromUpload(t *testing.T) {
	img, err := ImageFromUpload([]byte("x"), "image/webp", "a.bin")
	if err != nil || img.Ext != "webp" {
		t.Errorf("content type: %+v, %v", img, err)
	}
	img, err = ImageFromUpload([]byte("x"), "application/octet-stream", "photo.PNG")
	if err != nil || img.Ext != "png" || img.ContentType != "image/png" {
		t.Errorf("file name fallback: %+v, %v", img, err)
	}
	if _, err := ImageFromUpload([]byte("x"), "text/plain", "notes.txt"); err == nil {
		t.Error("text upload accepted")
	}
	if _, err := ImageFromUpload([]byte("x"), "image/x/../../evil", "a.bin"); err == nil {
		t.Error("path-like subtype accepted")
	}
	if _, err := ImageFromUpload([]byte("x"), "application/octet-stream", "a.png/../../b"); err == nil {
		t.Error("path-like file name accepted")
	}
	if _, err := ImageFromUpload(nil, "image/png", "a.png"); err == nil {
		t.Error("empty upload accepted")
	}
}
