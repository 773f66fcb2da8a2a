package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/services/bom"
	"github.com/xelth-com/linerecords/internal/websocket"
)

func (r *Router) getMatrix(w http.ResponseWriter, req *http.Request) {
	m, err := r.svc.BOM.Matrix(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (r *Router) listVariants(w http.ResponseWriter, req *http.Request) {
	variants, err := r.svc.BOM.Variants(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if variants == nil {
		variants = []models.Variant{}
	}
	respondJSON(w, http.StatusOK, variants)
}

type variantRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func readVariantRequest(req *http.Request) (variantRequest, error) {
	var body variantRequest
	var name, color string
	if err := decodeBody(req, &body, map[string]*string{"name": &name, "color": &color}); err != nil {
		return body, err
	}
	if !isJSON(req) {
		if _, ok := req.Form["name"]; ok {
			body.Name = &name
		}
		if _, ok := req.Form["color"]; ok {
			body.Color = &color
		}
	}
	return body, nil
}

func (r *Router) createVariant(w http.ResponseWriter, req *http.Request) {
	body, err := readVariantRequest(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	var name, color string
	if body.Name != nil {
		name = *body.Name
	}
	if body.Color != nil {
		color = *body.Color
	}
	v, err := r.svc.BOM.CreateVariant(req.Context(), name, color)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventMatrix})
	respondJSON(w, http.StatusCreated, v)
}

func (r *Router) updateVariant(w http.ResponseWriter, req *http.Request) {
	body, err := readVariantRequest(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	v, err := r.svc.BOM.UpdateVariant(req.Context(), pathID(req, "id"), body.Name, body.Color)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventMatrix})
	respondJSON(w, http.StatusOK, v)
}

func (r *Router) deleteVariant(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.BOM.DeleteVariant(req.Context(), pathID(req, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventMatrix})
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) createBomItem(w http.ResponseWriter, req *http.Request) {
	var in bom.NewItem
	if err := decodeBody(req, &in, map[string]*string{
		"station":             &in.Station,
		"part_number":         &in.PartNumber,
		"description":         &in.Description,
		"quantity":            &in.Quantity,
		"visual_aid_bg_color": &in.Color,
	}); err != nil {
		respondServiceError(w, err)
		return
	}
	item, err := r.svc.BOM.CreateItem(req.Context(), in)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventMatrix})
	respondJSON(w, http.StatusCreated, item)
}

func (r *Router) updateBomItemField(w http.ResponseWriter, req *http.Request) {
	edit, err := readFieldEdit(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	item, err := r.svc.BOM.UpdateItemField(req.Context(), pathID(req, "id"), edit.Field, edit.Value)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"item":    item,
	})
}

func (r *Router) updateBomItemColor(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Color string `json:"color"`
	}
	if err := decodeBody(req, &body, map[string]*string{"color": &body.Color}); err != nil {
		respondServiceError(w, err)
		return
	}
	item, err := r.svc.BOM.SetItemColor(req.Context(), pathID(req, "id"), body.Color)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventMatrix})
	respondJSON(w, http.StatusOK, item)
}

func (r *Router) deleteBomItem(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.BOM.DeleteItem(req.Context(), pathID(req, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventMatrix})
	w.WriteHeader(http.StatusNoContent)
}

// toggleApplicability flips one matrix cell and answers with its new value
func (r *Router) toggleApplicability(w http.ResponseWriter, req *http.Request) {
	itemID, variantID := pathID(req, "itemId"), pathID(req, "variantId")
	applicable, err := r.svc.BOM.Toggle(req.Context(), itemID, variantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publishCell(itemID, variantID, applicable)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"applicable": applicable,
	})
}

func (r *Router) publishCell(itemID, variantID uint, applicable bool) {
	r.publish(websocket.Event{
		Type:       websocket.EventBomCell,
		ItemID:     itemID,
		VariantID:  variantID,
		Applicable: &applicable,
	})
}

func (r *Router) exportBOM(w http.ResponseWriter, req *http.Request) {
	f, err := r.svc.BOM.ExportXLSX(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("bom_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if err := f.Write(w); err != nil {
		log.Errorf("write xlsx: %v", err)
	}
}

func (r *Router) listHistory(w http.ResponseWriter, req *http.Request) {
	entries, err := r.svc.BOM.History(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.DocHistoryItem{}
	}
	respondJSON(w, http.StatusOK, entries)
}

func (r *Router) addHistory(w http.ResponseWriter, req *http.Request) {
	h, err := r.svc.BOM.AddHistory(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h)
}

func (r *Router) updateHistoryField(w http.ResponseWriter, req *http.Request) {
	edit, err := readFieldEdit(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	h, err := r.svc.BOM.UpdateHistoryField(req.Context(), pathID(req, "id"), edit.Field, edit.Value)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entry":   h,
	})
}

func (r *Router) deleteHistory(w http.ResponseWriter, req *http.Request) {
	if err := r.svc.BOM.DeleteHistory(req.Context(), pathID(req, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
