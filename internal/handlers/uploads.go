package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/services/storage"
)

// store saves the multipart "file" part under prefix and returns its public reference
func (r *Router) store(req *http.Request, prefix string) (string, error) {
	if r.svc.Storage == nil {
		return "", errors.New("storage not configured")
	}
	if err := req.ParseMultipartForm(maxFormMemory); err != nil {
		return "", fmt.Errorf("%w: multipart form expected", models.ErrInvalidValue)
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("%w: file is required", models.ErrInvalidValue)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %q is not an image", models.ErrInvalidValue, contentType)
	}

	key := storage.ObjectKey(prefix, header.Filename)
	if err := r.svc.Storage.Put(req.Context(), key, file, header.Size, contentType); err != nil {
		return "", err
	}
	return r.svc.PublicURL + "/" + key, nil
}

// uploadPhoto stores the front or tag photo of an equipment
func (r *Router) uploadPhoto(w http.ResponseWriter, req *http.Request) {
	var field string
	switch mux.Vars(req)["slot"] {
	case "front":
		field = models.FieldPhotoFront
	case "tag":
		field = models.FieldPhotoTag
	default:
		respondError(w, http.StatusBadRequest, "slot must be front or tag")
		return
	}

	id := pathID(req, "id")
	if _, err := r.svc.Equipment.Get(req.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	ref, err := r.store(req, fmt.Sprintf("photos/%d", id))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	res, err := r.svc.Equipment.UpdateField(req.Context(), id, field, ref)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, res.Equipment)
}

func (r *Router) uploadBomImage(w http.ResponseWriter, req *http.Request) {
	id := pathID(req, "id")
	if _, err := r.svc.BOM.Item(req.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	ref, err := r.store(req, "bom")
	if err != nil {
		respondServiceError(w, err)
		return
	}
	item, err := r.svc.BOM.SetItemImage(req.Context(), id, ref)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (r *Router) serveUpload(w http.ResponseWriter, req *http.Request) {
	if r.svc.Storage == nil {
		respondError(w, http.StatusNotFound, "storage not configured")
		return
	}
	key := mux.Vars(req)["key"]
	rc, err := r.svc.Storage.Open(req.Context(), key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, storage.ErrBadKey) {
			respondError(w, http.StatusNotFound, "file not found")
			return
		}
		respondServiceError(w, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	io.Copy(w, rc)
}
