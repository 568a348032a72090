package collections

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pixelit-club/clubhub/internal/app/catalog"
	"github.com/pixelit-club/clubhub/internal/app/system/storage"
	"github.com/pixelit-club/clubhub/internal/app/system/webjson"
)

// maxUploadBytes bounds a whole multipart request body.
const maxUploadBytes = 32 << 20 // 32 MB

// Accepted attachment MIME types per part name.
var (
	imageTypes = map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/gif":  ".gif",
		"image/webp": ".webp",
	}
	videoTypes = map[string]string{
		"video/mp4":  ".mp4",
		"video/webm": ".webm",
		"video/ogg":  ".ogg",
	}
)

// errUnsupportedType marks an attachment rejected before any bytes were
// stored.
type unsupportedTypeError struct {
	field    string
	mimeType string
}

func (e *unsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported %s type %q", e.field, e.mimeType)
}

// storedUpload records where one attachment landed: the backend object
// path (for cleanup) and the public URL (for the record field).
type storedUpload struct {
	Path string
	URL  string
}

// storeAttachments persists any uploaded photo/media parts and returns a
// map of field name to stored location. Nothing is written unless every
// part passes the MIME allowlist, so a rejected upload never leaves stray
// objects behind.
func (h *Handler) storeAttachments(r *http.Request, def catalog.Definition) (map[string]storedUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	type pending struct {
		field    string
		header   *multipart.FileHeader
		mimeType string
	}
	var parts []pending

	for _, field := range def.AttachmentFields() {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		mimeType, err := attachmentType(field, header)
		if err != nil {
			return nil, err
		}
		parts = append(parts, pending{field: field, header: header, mimeType: mimeType})
	}

	stored := map[string]storedUpload{}
	for _, p := range parts {
		up, err := h.storeOne(r, def, p.field, p.header, p.mimeType)
		if err != nil {
			h.discardUploads(r, stored)
			return nil, err
		}
		stored[p.field] = up
	}
	return stored, nil
}

// attachmentType resolves and checks the MIME type of one uploaded part.
func attachmentType(field string, header *multipart.FileHeader) (string, error) {
	allowed := imageTypes
	if field == "media" {
		allowed = videoTypes
	}

	mimeType := header.Header.Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	if _, ok := allowed[mimeType]; !ok {
		return "", &unsupportedTypeError{field: field, mimeType: mimeType}
	}

	// The filename extension must agree with the declared type; clients
	// that lie about one of the two get rejected here.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionMatches(allowed, ext) {
		return "", &unsupportedTypeError{field: field, mimeType: mimeType}
	}
	return mimeType, nil
}

func extensionMatches(allowed map[string]string, ext string) bool {
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	for _, want := range allowed {
		if ext == want {
			return true
		}
	}
	return false
}

// storeOne writes one attachment under a unique, date-partitioned path:
// <route>/YYYY/MM/<uuid8>-<sanitized-filename>.
func (h *Handler) storeOne(r *http.Request, def catalog.Definition, field string, header *multipart.FileHeader, mimeType string) (storedUpload, error) {
	file, err := header.Open()
	if err != nil {
		return storedUpload{}, fmt.Errorf("open uploaded %s: %w", field, err)
	}
	defer file.Close()

	now := time.Now().UTC()
	path := fmt.Sprintf("%s/%04d/%02d/%s-%s",
		def.Route, now.Year(), now.Month(),
		uuid.New().String()[:8], sanitizeFilename(header.Filename))

	opts := &storage.PutOptions{ContentType: mimeType}
	if err := h.Storage.Put(r.Context(), path, file, opts); err != nil {
		return storedUpload{}, fmt.Errorf("store %s: %w", field, err)
	}

	h.Log.Info("stored attachment",
		zap.String("collection", def.Route),
		zap.String("field", field),
		zap.String("path", path),
		zap.Int64("size", header.Size))

	return storedUpload{Path: path, URL: h.Storage.URL(path)}, nil
}

// discardUploads best-effort deletes objects stored earlier in a request
// that ultimately failed, so aborted creates don't accumulate orphans.
func (h *Handler) discardUploads(r *http.Request, stored map[string]storedUpload) {
	for field, up := range stored {
		if err := h.Storage.Delete(r.Context(), up.Path); err != nil {
			h.Log.Warn("failed to discard upload",
				zap.String("field", field),
				zap.String("path", up.Path),
				zap.Error(err))
		}
	}
}

// writeUploadError maps attachment failures: a rejected type is the
// client's fault (400), a storage backend failure is ours (500).
func (h *Handler) writeUploadError(w http.ResponseWriter, def catalog.Definition, err error) {
	var ute *unsupportedTypeError
	if errors.As(err, &ute) {
		webjson.Validation(w, fmt.Sprintf("Invalid %s", singular(def)),
			map[string]string{ute.field: ute.Error()})
		return
	}
	h.Log.Error("attachment storage failed", zap.String("collection", def.Route), zap.Error(err))
	webjson.Message(w, http.StatusInternalServerError, fmt.Sprintf("Error storing %s attachment", singular(def)))
}

// sanitizeFilename keeps a filename safe for storage paths.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
