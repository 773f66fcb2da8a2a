package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/middleware"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/websocket"
)

func (r *Router) getValidationChecklist(w http.ResponseWriter, req *http.Request) {
	view, err := r.svc.Checklist.ValidationChecklist(req.Context(), pathID(req, "equipmentId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

type validationRequest struct {
	Status      string `json:"status"`
	ValidatedBy string `json:"validatedBy"`
}

func (r *Router) publishProgress(equipmentID uint, kind string, p calc.Summary) {
	r.publish(websocket.Event{
		Type:        websocket.EventProgress,
		EquipmentID: equipmentID,
		Kind:        kind,
		Progress:    &p,
	})
}

// validatedBy falls back to the operator of the request token
func validatedBy(req *http.Request, given string) string {
	if given = strings.TrimSpace(given); given != "" {
		return given
	}
	return middleware.Operator(req.Context())
}

// submitValidation answers with the recomputed progress of the station
func (r *Router) submitValidation(w http.ResponseWriter, req *http.Request) {
	var body validationRequest
	if err := decodeBody(req, &body, map[string]*string{"status": &body.Status, "validated_by": &body.ValidatedBy}); err != nil {
		respondServiceError(w, err)
		return
	}

	equipmentID := pathID(req, "equipmentId")
	res, progress, err := r.svc.Checklist.SubmitValidation(req.Context(), equipmentID, pathID(req, "itemId"), body.Status, validatedBy(req, body.ValidatedBy))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publishProgress(equipmentID, "validation", progress)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"result":     res,
		"percentage": progress.Percentage,
		"band":       progress.Band,
		"okCount":    progress.Satisfied,
		"total":      progress.Total,
	})
}

func (r *Router) clearValidation(w http.ResponseWriter, req *http.Request) {
	equipmentID := pathID(req, "equipmentId")
	progress, err := r.svc.Checklist.ClearValidation(req.Context(), equipmentID, pathID(req, "itemId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publishProgress(equipmentID, "validation", progress)
	respondJSON(w, http.StatusOK, progress)
}

type categoryRequest struct {
	Code  string `json:"code"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

func (r *Router) createValidationCategory(w http.ResponseWriter, req *http.Request) {
	var body categoryRequest
	var order string
	if err := decodeBody(req, &body, map[string]*string{"code": &body.Code, "title": &body.Title, "order": &order}); err != nil {
		respondServiceError(w, err)
		return
	}
	if order != "" {
		body.Order, _ = strconv.Atoi(strings.TrimSpace(order))
	}
	cat, err := r.svc.Checklist.CreateValidationCategory(req.Context(), body.Code, body.Title, body.Order)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cat)
}

func (r *Router) deleteValidationCategory(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.Checklist.DeleteValidationCategory(req.Context(), pathID(req, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) createValidationItem(w http.ResponseWriter, req *http.Request) {
	var item models.ValidationChecklistItem
	if err := decodeBody(req, &item, map[string]*string{
		"ref_iatf": &item.RefIATF,
		"ref_vda":  &item.RefVDA,
		"test":     &item.Test,
		"expected": &item.Expected,
		"example":  &item.Example,
	}); err != nil {
		respondServiceError(w, err)
		return
	}
	if !isJSON(req) {
		id, _ := strconv.ParseUint(req.FormValue("category_id"), 10, 64)
		item.CategoryID = uint(id)
		item.SortOrder, _ = strconv.Atoi(req.FormValue("order"))
	}
	created, err := r.svc.Checklist.CreateValidationItem(req.Context(), item)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (r *Router) deleteValidationItem(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.Checklist.DeleteValidationItem(req.Context(), pathID(req, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) getDocumentationChecklist(w http.ResponseWriter, req *http.Request) {
	view, err := r.svc.Checklist.DocumentationChecklist(req.Context(), pathID(req, "equipmentId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// setDocumentation sets the checked state; without a value it toggles
func (r *Router) setDocumentation(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Checked *bool `json:"checked"`
	}
	var raw string
	if err := decodeBody(req, &body, map[string]*string{"checked": &raw}); err != nil {
		respondServiceError(w, err)
		return
	}
	if raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "checked must be true or false")
			return
		}
		body.Checked = &v
	}

	equipmentID := pathID(req, "equipmentId")
	res, progress, err := r.svc.Checklist.SetDocumentation(req.Context(), equipmentID, pathID(req, "itemId"), body.Checked)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publishProgress(equipmentID, "documentation", progress)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"isChecked":  res.IsChecked,
		"percentage": progress.Percentage,
		"band":       progress.Band,
	})
}
