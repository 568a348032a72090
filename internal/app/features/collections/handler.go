// Package collections implements the generic CRUD router over the content
// catalog. One handler serves every collection; the route segment picks
// the definition and everything downstream (validation, storage, JSON
// shape) is driven by it.
package collections

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/pixelit-club/clubhub/internal/app/catalog"
	recordstore "github.com/pixelit-club/clubhub/internal/app/store/records"
	"github.com/pixelit-club/clubhub/internal/app/system/htmlsanitize"
	"github.com/pixelit-club/clubhub/internal/app/system/storage"
	"github.com/pixelit-club/clubhub/internal/app/system/webjson"
)

// Handler owns the list/create/update/delete handlers for every content
// collection. It is constructed once at startup with the immutable
// catalog, the generic record store, and the storage backend.
type Handler struct {
	Catalog *catalog.Catalog
	Records *recordstore.Store
	Storage storage.Store
	Log     *zap.Logger
}

// NewHandler constructs a collections Handler.
func NewHandler(cat *catalog.Catalog, records *recordstore.Store, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog: cat,
		Records: records,
		Storage: store,
		Log:     logger,
	}
}

// definition resolves the {collection} route parameter, writing a 400 for
// unknown names. The store is never touched for an unknown collection.
func (h *Handler) definition(w http.ResponseWriter, r *http.Request) (catalog.Definition, bool) {
	route := chi.URLParam(r, "collection")
	def, ok := h.Catalog.Lookup(route)
	if !ok {
		webjson.Message(w, http.StatusBadRequest, fmt.Sprintf("Unknown collection %q", route))
		return catalog.Definition{}, false
	}
	return def, true
}

// recordID parses the {id} route parameter. Malformed hex gets the same
// 404 an unknown identity would.
func (h *Handler) recordID(w http.ResponseWriter, r *http.Request, def catalog.Definition) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		webjson.Message(w, http.StatusNotFound, notFoundMessage(def))
		return primitive.NilObjectID, false
	}
	return id, true
}

// List handles GET /api/{collection}. Public: no token required.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	def, ok := h.definition(w, r)
	if !ok {
		return
	}

	recs, err := h.Records.List(r.Context(), def)
	if err != nil {
		h.Log.Error("list failed", zap.String("collection", def.Route), zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching %s", def.Route))
		return
	}

	webjson.Write(w, http.StatusOK, recs)
}

// Create handles POST /api/{collection} (admin token required).
// Accepts multipart form data with optional photo/media file parts, a
// urlencoded form, or a JSON body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	def, ok := h.definition(w, r)
	if !ok {
		return
	}

	fields, err := h.parseFields(r, def)
	if err != nil {
		webjson.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := catalog.Validate(def, fields, false); err != nil {
		h.writeValidation(w, def, err)
		return
	}

	stored, err := h.storeAttachments(r, def)
	if err != nil {
		h.writeUploadError(w, def, err)
		return
	}
	for name, up := range stored {
		fields[name] = up.URL
	}

	if err := catalog.Validate(def, fields, false); err != nil {
		h.discardUploads(r, stored)
		h.writeValidation(w, def, err)
		return
	}

	rec, err := h.Records.Create(r.Context(), def, fields)
	if err != nil {
		h.discardUploads(r, stored)
		h.Log.Error("create failed", zap.String("collection", def.Route), zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, fmt.Sprintf("Error creating %s", singular(def)))
		return
	}

	webjson.Write(w, http.StatusCreated, rec)
}

// Update handles PUT /api/{collection}/{id} (admin token required).
// Supplied fields replace stored values; omitted fields are untouched.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	def, ok := h.definition(w, r)
	if !ok {
		return
	}
	id, ok := h.recordID(w, r, def)
	if !ok {
		return
	}

	fields, err := h.parseFields(r, def)
	if err != nil {
		webjson.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := catalog.Validate(def, fields, true); err != nil {
		h.writeValidation(w, def, err)
		return
	}

	stored, err := h.storeAttachments(r, def)
	if err != nil {
		h.writeUploadError(w, def, err)
		return
	}
	for name, up := range stored {
		fields[name] = up.URL
	}

	rec, err := h.Records.Update(r.Context(), def, id, fields)
	if errors.Is(err, recordstore.ErrNotFound) {
		h.discardUploads(r, stored)
		webjson.Message(w, http.StatusNotFound, notFoundMessage(def))
		return
	}
	if err != nil {
		h.discardUploads(r, stored)
		h.Log.Error("update failed", zap.String("collection", def.Route), zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, fmt.Sprintf("Error updating %s", singular(def)))
		return
	}

	webjson.Write(w, http.StatusOK, rec)
}

// Delete handles DELETE /api/{collection}/{id} (admin token required).
// Deletion is permanent; repeating it returns 404 with no side effects.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	def, ok := h.definition(w, r)
	if !ok {
		return
	}
	id, ok := h.recordID(w, r, def)
	if !ok {
		return
	}

	err := h.Records.Delete(r.Context(), def, id)
	if errors.Is(err, recordstore.ErrNotFound) {
		webjson.Message(w, http.StatusNotFound, notFoundMessage(def))
		return
	}
	if err != nil {
		h.Log.Error("delete failed", zap.String("collection", def.Route), zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, fmt.Sprintf("Error deleting %s", singular(def)))
		return
	}

	webjson.Message(w, http.StatusOK, fmt.Sprintf("%s deleted successfully", singular(def)))
}

// parseFields extracts the declared field values from the request body.
// Attachment file parts are handled separately in storeAttachments; plain
// photo/media string values (direct URLs) are collected here.
func (h *Handler) parseFields(r *http.Request, def catalog.Definition) (map[string]string, error) {
	fields := map[string]string{}
	names := append(def.FieldNames(), def.AttachmentFields()...)

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return nil, fmt.Errorf("invalid multipart form")
		}
	case strings.HasPrefix(ct, "application/json"):
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("invalid JSON body")
		}
		for _, name := range names {
			if v, ok := body[name]; ok {
				fields[name] = htmlsanitize.Strip(fmt.Sprintf("%v", v))
			}
		}
		return fields, nil
	default:
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body")
		}
	}

	for _, name := range names {
		if vs, ok := r.Form[name]; ok && len(vs) > 0 {
			fields[name] = htmlsanitize.Strip(vs[0])
		}
	}
	return fields, nil
}

func (h *Handler) writeValidation(w http.ResponseWriter, def catalog.Definition, err error) {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		webjson.Validation(w, fmt.Sprintf("Invalid %s", singular(def)), verr.Fields)
		return
	}
	webjson.Message(w, http.StatusBadRequest, err.Error())
}

func notFoundMessage(def catalog.Definition) string {
	return fmt.Sprintf("%s not found", singular(def))
}

// singular trims the route name the way the admin console labels rows
// ("members" -> "member").
func singular(def catalog.Definition) string {
	return strings.TrimSuffix(def.Route, "s")
}
