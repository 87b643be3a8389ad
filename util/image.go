package util

import (
	"encoding/base64"
	"errors"
	"mime"
	"strings"

	"github.com/RomanKim94/foodgram/entity"
)

var (
	errNotDataURI   = errors.New("image must be a data URI")
	errNotImage     = errors.New("data URI is not an image")
	errNotBase64    = errors.New("data URI is not base64 encoded")
	errEmptyPayload = errors.New("image payload is empty")
	errUnsupported  = errors.New("unsupported image type; use png, jpeg, gif or webp")
)

// imageExtensions maps accepted image subtypes to the stored file extension.
var imageExtensions = map[string]string{
	"png":   "png",
	"jpeg":  "jpeg",
	"jpg":   "jpeg",
	"pjpeg": "jpeg",
	"gif":   "gif",
	"webp":  "webp",
}

// imageFromSubtype resolves a subtype such as "jpg" to its extension and
// canonical content type.
func imageFromSubtype(subtype string) (ext, contentType string, err error) {
	ext, ok := imageExtensions[strings.ToLower(subtype)]
	if !ok {
		return "", "", errUnsupported
	}
	return ext, "image/" + ext, nil
}

// DecodeDataURI decodes "data:image/<ext>;base64,<payload>" into the image
// bytes, its extension and content type.
func DecodeDataURI(s string) (*entity.Image, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return nil, errNotDataURI
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(s, "data:"), ",")
	if !ok {
		return nil, errNotDataURI
	}
	mediaType, encoding, ok := strings.Cut(header, ";")
	if !ok || encoding != "base64" {
		return nil, errNotBase64
	}
	mediaType = strings.ToLower(mediaType)
	kind, subtype, ok := strings.Cut(mediaType, "/")
	if !ok || kind != "image" || subtype == "" {
		return nil, errNotImage
	}
	ext, contentType, err := imageFromSubtype(subtype)
	if err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some clients strip the padding
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return nil, errNotBase64
		}
	}
	if len(data) == 0 {
		return nil, errEmptyPayload
	}
	return &entity.Image{Data: data, Ext: ext, ContentType: contentType}, nil
}

// ImageFromUpload builds an Image from a multipart upload, deriving the
// extension from the content type or, failing that, the file name.
func ImageFromUpload(data []byte, contentType, filename string) (*entity.Image, error) {
	if len(data) == 0 {
		return nil, errEmptyPayload
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}
	if kind, subtype, ok := strings.Cut(mediaType, "/"); ok && kind == "image" {
		ext, contentType, err := imageFromSubtype(subtype)
		if err != nil {
			return nil, err
		}
		return &entity.Image{Data: data, Ext: ext, ContentType: contentType}, nil
	}
	if i := strings.LastIndexByte(filename, '.'); i >= 0 && i < len(filename)-1 {
		if ext, contentType, err := imageFromSubtype(filename[i+1:]); err == nil {
			return &entity.Image{Data: data, Ext: ext, ContentType: contentType}, nil
		}
	}
	return nil, errNotImage
}
