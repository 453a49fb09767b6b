package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gatepass/vehicle-access/internal/storage"
)

// MaxPhotoBytes caps uploaded photos at 5MB.
const MaxPhotoBytes = 5 << 20

// PhotoStore is the storage surface the upload endpoint needs.
type PhotoStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	ResolveURL(ctx context.Context, key string) (string, error)
}

// UploadHandler accepts driver photos, validates them and stores them in
// the object store. The response carries the object key, which the client
// merges into the add form under photo_path, plus a viewable URL.
type UploadHandler struct {
	Store PhotoStore
}

func NewUploadHandler(store PhotoStore) *UploadHandler {
	return &UploadHandler{Store: store}
}

// Photo handles a single multipart "file" part. Oversize files, non-image
// MIME types and storage failures each get their own message so the
// operator knows what to fix.
func (h *UploadHandler) Photo(c echo.Context) error {
	if h.Store == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "photo storage is not configured"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file part required"})
	}
	if fh.Size > MaxPhotoBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file exceeds the 5MB limit"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read upload"})
	}
	defer src.Close()

	// Sniff the real content type; the client-declared header is advisory.
	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read upload"})
	}
	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "only image files are allowed"})
	}

	body := io.MultiReader(strings.NewReader(string(head[:n])), src)
	key := storage.ObjectKey("people", fh.Filename)

	ctx := c.Request().Context()
	if _, err := h.Store.Upload(ctx, key, contentType, body); err != nil {
		if strings.Contains(err.Error(), "AccessDenied") {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage permission denied"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}

	// Best effort: the path is what gets persisted, the URL is a preview.
	url, _ := h.Store.ResolveURL(ctx, key)

	return c.JSON(http.StatusCreated, echo.Map{"path": key, "url": url})
}
