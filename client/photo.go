package client

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"mime"
	"os"
	"path/filepath"
)

const defaultPhotoContentType = "application/octet-stream"

// Photo is a file to be uploaded as a pet photo.
type Photo struct {
	Filename    string
	ContentType string
	Content     []byte
}

// LoadPhoto reads a file to be uploaded. The content type is guessed from the file extension,
// the same as a browser would do; the service is expected to reject files that are not images
// regardless of what they are called.
func LoadPhoto(path string) (Photo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Photo{}, fmt.Errorf("cannot read photo file: %w", err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = defaultPhotoContentType
	}
	return Photo{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Content:     data,
	}, nil
}

// GeneratedJPEG returns a small valid JPEG image, for test runs that were not given a photo file.
func GeneratedJPEG() Photo {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, nil); err != nil {
		panic(err) // encoding to memory cannot fail for a valid image
	}
	return Photo{Filename: "generated.jpg", ContentType: "image/jpeg", Content: buf.Bytes()}
}

// TextFile returns a plain text file, for checking that the service refuses non-image photos.
func TextFile() Photo {
	return Photo{
		Filename:    "picture.txt",
		ContentType: "text/plain",
		Content:     []byte("This is not a picture, it is a text file pretending to be one.\n"),
	}
}
