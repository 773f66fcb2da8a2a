package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/services/printer"
)

// generateLabels renders tag labels for all equipment, or for the ids given
// as repeated "id" query parameters
func (r *Router) generateLabels(w http.ResponseWriter, req *http.Request) {
	var config printer.LabelConfig
	if req.Method == http.MethodPost && req.ContentLength != 0 {
		if err := json.NewDecoder(req.Body).Decode(&config); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}
	if config.Suffix == "" {
		config.Suffix = r.svc.LabelSuffix
	}

	list, err := r.selectEquipment(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	pdfBytes, err := printer.GenerateLabelsPDF(config, printer.EquipmentLabels(list))
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"equipment_labels.pdf\"")
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

func (r *Router) selectEquipment(req *http.Request) ([]models.Equipment, error) {
	ids := req.URL.Query()["id"]
	if len(ids) == 0 {
		overview, err := r.svc.Equipment.List(req.Context())
		if err != nil {
			return nil, err
		}
		list := make([]models.Equipment, 0, len(overview))
		for _, o := range overview {
			list = append(list, o.Equipment)
		}
		return list, nil
	}

	list := make([]models.Equipment, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q", models.ErrInvalidValue, raw)
		}
		eq, err := r.svc.Equipment.Get(req.Context(), uint(id))
		if err != nil {
			return nil, err
		}
		list = append(list, *eq)
	}
	return list, nil
}

func (r *Router) validationReport(w http.ResponseWriter, req *http.Request) {
	view, err := r.svc.Checklist.ValidationChecklist(req.Context(), pathID(req, "equipmentId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	pdfBytes, err := printer.ValidationReportPDF(view, time.Now())
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"validation_%s.pdf\"", view.Equipment.Station))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}
