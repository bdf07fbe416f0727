package qrcode

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const (
	// payloadPrefix keeps the scanned payload simple and unambiguous for clients.
	payloadPrefix = "REG:"
	imageSize     = 256
)

// Generator renders deterministic identifier images into a dedicated directory.
// It has no knowledge of the database; callers persist the returned path.
type Generator struct {
	dir string
}

// NewGenerator ensures the image directory exists.
func NewGenerator(dir string) (*Generator, error) {
	if dir == "" {
		dir = "./qrcodes"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create qr directory: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// Payload returns the encoded QR content for a registration number.
func Payload(regNo string) string {
	return payloadPrefix + regNo
}

// FileName returns the image file name for a registration number.
func FileName(regNo string) string {
	return regNo + ".png"
}

// Generate renders the QR image for regNo, overwriting any previous image, and
// returns the image path relative to the application base directory. The
// payload is a pure function of regNo, so regeneration is idempotent.
func (g *Generator) Generate(regNo string) (string, error) {
	if regNo == "" {
		return "", fmt.Errorf("empty registration number")
	}
	// Registration numbers become file names; refuse anything that could
	// escape the image directory.
	if strings.ContainsAny(regNo, `/\`) || strings.Contains(regNo, "..") {
		return "", fmt.Errorf("registration number %q is not a safe file name", regNo)
	}

	png, err := qr.Encode(Payload(regNo), qr.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("encode qr for %s: %w", regNo, err)
	}

	fileName := FileName(regNo)
	if err := os.WriteFile(filepath.Join(g.dir, fileName), png, 0o644); err != nil {
		return "", fmt.Errorf("write qr image for %s: %w", regNo, err)
	}

	return path.Join(filepath.Base(filepath.Clean(g.dir)), fileName), nil
}

// ImagePath returns the on-disk location for a registration number's image.
func (g *Generator) ImagePath(regNo string) string {
	return filepath.Join(g.dir, FileName(regNo))
}
