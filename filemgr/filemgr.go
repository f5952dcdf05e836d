package filemgr

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

var allowedImageMIMEs = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var (
	uploadDir     = "./static/uploads"
	publicBaseURL = "http://localhost:8080"
)

// Configure sets the upload root and the base URL baked into stored links.
func Configure(dir, baseURL string) {
	if dir != "" {
		uploadDir = dir
	}
	if baseURL != "" {
		publicBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// ToPublicURL converts a saved relative path into an accessible HTTP URL.
func ToPublicURL(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return publicBaseURL + path.Clean("/"+filepath.ToSlash(p))
}

// SaveGrainImage stores one uploaded listing image under the grains folder
// with a uuid name and writes a 200px-wide thumbnail next to it. Returns the
// public URL of the original.
func SaveGrainImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	ext, ok := allowedImageMIMEs[mimeType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("decode image %q: %w", header.Filename, err)
	}

	name := uuid.New().String()
	dir := filepath.Join(uploadDir, "grains")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	origPath := filepath.Join(dir, name+ext)
	if err := os.WriteFile(origPath, buf, 0o644); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}

	// thumbs are best effort; the original is already durable
	_ = writeThumb(img, dir, name)

	rel := filepath.Join(strings.TrimPrefix(uploadDir, "./"), "grains", name+ext)
	return ToPublicURL(rel), nil
}

func writeThumb(img image.Image, dir, name string) error {
	resized := imaging.Resize(img, 200, 0, imaging.Lanczos) // maintain aspect ratio
	thumbDir := filepath.Join(dir, "thumb")
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		return err
	}

	out, err := os.Create(filepath.Join(thumbDir, name+".jpg"))
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, resized, &jpeg.Options{Quality: 85})
}

// CollectGrainImages pulls image1..image4 out of a multipart form and saves
// whichever are present, in slot order.
func CollectGrainImages(form *multipart.Form) ([]string, error) {
	var urls []string
	for i := 1; i <= 4; i++ {
		files := form.File[fmt.Sprintf("image%d", i)]
		if len(files) == 0 {
			continue
		}
		f, err := files[0].Open()
		if err != nil {
			return urls, fmt.Errorf("open image%d: %w", i, err)
		}
		url, err := SaveGrainImage(f, files[0])
		if err != nil {
			return urls, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
