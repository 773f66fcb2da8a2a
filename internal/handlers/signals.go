package handlers

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Datastar endpoints read the page signals and answer with patched signals
// so the status card and matrix cell update in place.

type validationSignals struct {
	Status      string `json:"status"`
	ValidatedBy string `json:"validatedBy"`
}

func (r *Router) dsSubmitValidation(w http.ResponseWriter, req *http.Request) {
	var sig validationSignals
	if err := datastar.ReadSignals(req, &sig); err != nil {
		http.Error(w, "invalid signals", http.StatusBadRequest)
		return
	}

	equipmentID, itemID := pathID(req, "equipmentId"), pathID(req, "itemId")
	res, progress, err := r.svc.Checklist.SubmitValidation(req.Context(), equipmentID, itemID, sig.Status, validatedBy(req, sig.ValidatedBy))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publishProgress(equipmentID, "validation", progress)

	sse := datastar.NewSSE(w, req)
	sse.MarshalAndPatchSignals(map[string]interface{}{
		"progress": map[string]interface{}{
			"percentage": progress.Percentage,
			"band":       progress.Band,
			"ok":         progress.Satisfied,
			"total":      progress.Total,
		},
		"results": map[string]interface{}{
			fmt.Sprintf("i%d", itemID): res.Status,
		},
	})
}

func (r *Router) dsToggleDocumentation(w http.ResponseWriter, req *http.Request) {
	equipmentID, itemID := pathID(req, "equipmentId"), pathID(req, "itemId")
	res, progress, err := r.svc.Checklist.SetDocumentation(req.Context(), equipmentID, itemID, nil)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publishProgress(equipmentID, "documentation", progress)

	sse := datastar.NewSSE(w, req)
	sse.MarshalAndPatchSignals(map[string]interface{}{
		"docProgress": map[string]interface{}{
			"percentage": progress.Percentage,
			"band":       progress.Band,
		},
		"docs": map[string]interface{}{
			fmt.Sprintf("i%d", itemID): res.IsChecked,
		},
	})
}

func (r *Router) dsToggleApplicability(w http.ResponseWriter, req *http.Request) {
	itemID, variantID := pathID(req, "itemId"), pathID(req, "variantId")
	applicable, err := r.svc.BOM.Toggle(req.Context(), itemID, variantID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publishCell(itemID, variantID, applicable)

	sse := datastar.NewSSE(w, req)
	sse.MarshalAndPatchSignals(map[string]interface{}{
		"cells": map[string]interface{}{
			fmt.Sprintf("c%d_%d", itemID, variantID): applicable,
		},
	})
}
