package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xelth-com/linerecords/internal/buildinfo"
	"github.com/xelth-com/linerecords/internal/logs"
	"github.com/xelth-com/linerecords/internal/models"
	"github.com/xelth-com/linerecords/internal/services/bom"
	"github.com/xelth-com/linerecords/internal/services/checklist"
	"github.com/xelth-com/linerecords/internal/services/equipment"
	"github.com/xelth-com/linerecords/internal/services/storage"
	"github.com/xelth-com/linerecords/internal/websocket"
)

var log = logs.WithComponent("http")

// Services bundles what the handlers need
type Services struct {
	Equipment   *equipment.Service
	Checklist   *checklist.Service
	BOM         *bom.Service
	Storage     storage.Store  // optional, uploads are refused without it
	Hub         *websocket.Hub // optional
	PublicURL   string         // prefix of stored upload references
	LabelSuffix string
}

// Router wraps the mux router and the services
type Router struct {
	*mux.Router
	svc Services
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(svc Services) *Router {
	if svc.PublicURL == "" {
		svc.PublicURL = "/uploads"
	}
	r := &Router{
		Router: mux.NewRouter(),
		svc:    svc,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Equipment
	api.HandleFunc("/equipment", r.listEquipment).Methods("GET")
	api.HandleFunc("/equipment", r.createEquipment).Methods("POST")
	api.HandleFunc("/equipment/{id:[0-9]+}", r.getEquipment).Methods("GET")
	api.HandleFunc("/equipment/{id:[0-9]+}", r.deleteEquipment).Methods("DELETE")
	api.HandleFunc("/equipment/{id:[0-9]+}/field", r.updateEquipmentField).Methods("POST")
	api.HandleFunc("/equipment/{id:[0-9]+}/progress", r.getEquipmentProgress).Methods("GET")
	api.HandleFunc("/equipment/{id:[0-9]+}/photo/{slot}", r.uploadPhoto).Methods("POST")

	// Devices
	api.HandleFunc("/equipment/{id:[0-9]+}/devices", r.listDevices).Methods("GET")
	api.HandleFunc("/equipment/{id:[0-9]+}/devices", r.addDevice).Methods("POST")
	api.HandleFunc("/devices/{id:[0-9]+}/field", r.updateDeviceField).Methods("POST")
	api.HandleFunc("/devices/{id:[0-9]+}", r.deleteDevice).Methods("DELETE")

	// Validation checklist
	api.HandleFunc("/validation/checklist/{equipmentId:[0-9]+}", r.getValidationChecklist).Methods("GET")
	api.HandleFunc("/validation/categories", r.createValidationCategory).Methods("POST")
	api.HandleFunc("/validation/categories/{id:[0-9]+}", r.deleteValidationCategory).Methods("DELETE")
	api.HandleFunc("/validation/items", r.createValidationItem).Methods("POST")
	api.HandleFunc("/validation/items/{id:[0-9]+}", r.deleteValidationItem).Methods("DELETE")
	api.HandleFunc("/validation/{equipmentId:[0-9]+}/{itemId:[0-9]+}", r.submitValidation).Methods("POST")
	api.HandleFunc("/validation/{equipmentId:[0-9]+}/{itemId:[0-9]+}", r.clearValidation).Methods("DELETE")

	// Documentation checklist
	api.HandleFunc("/documentation/checklist/{equipmentId:[0-9]+}", r.getDocumentationChecklist).Methods("GET")
	api.HandleFunc("/documentation/{equipmentId:[0-9]+}/{itemId:[0-9]+}", r.setDocumentation).Methods("POST")

	// BOM
	api.HandleFunc("/bom/matrix", r.getMatrix).Methods("GET")
	api.HandleFunc("/bom/export.xlsx", r.exportBOM).Methods("GET")
	api.HandleFunc("/bom/variants", r.listVariants).Methods("GET")
	api.HandleFunc("/bom/variants", r.createVariant).Methods("POST")
	api.HandleFunc("/bom/variants/{id:[0-9]+}", r.updateVariant).Methods("POST")
	api.HandleFunc("/bom/variants/{id:[0-9]+}", r.deleteVariant).Methods("DELETE")
	api.HandleFunc("/bom/items", r.createBomItem).Methods("POST")
	api.HandleFunc("/bom/items/{id:[0-9]+}/field", r.updateBomItemField).Methods("POST")
	api.HandleFunc("/bom/items/{id:[0-9]+}/color", r.updateBomItemColor).Methods("POST")
	api.HandleFunc("/bom/items/{id:[0-9]+}/image", r.uploadBomImage).Methods("POST")
	api.HandleFunc("/bom/items/{id:[0-9]+}", r.deleteBomItem).Methods("DELETE")
	api.HandleFunc("/bom/toggle/{itemId:[0-9]+}/{variantId:[0-9]+}", r.toggleApplicability).Methods("POST")

	// Document history
	api.HandleFunc("/history", r.listHistory).Methods("GET")
	api.HandleFunc("/history", r.addHistory).Methods("POST")
	api.HandleFunc("/history/{id:[0-9]+}/field", r.updateHistoryField).Methods("POST")
	api.HandleFunc("/history/{id:[0-9]+}", r.deleteHistory).Methods("DELETE")

	// Printing
	api.HandleFunc("/print/labels", r.generateLabels).Methods("GET", "POST")
	api.HandleFunc("/print/validation/{equipmentId:[0-9]+}", r.validationReport).Methods("GET")

	// Datastar signal endpoints
	ds := r.PathPrefix("/ds").Subrouter()
	ds.HandleFunc("/validation/{equipmentId:[0-9]+}/{itemId:[0-9]+}", r.dsSubmitValidation).Methods("POST")
	ds.HandleFunc("/documentation/{equipmentId:[0-9]+}/{itemId:[0-9]+}", r.dsToggleDocumentation).Methods("POST")
	ds.HandleFunc("/bom/toggle/{itemId:[0-9]+}/{variantId:[0-9]+}", r.dsToggleApplicability).Methods("POST")

	// Uploaded files
	r.HandleFunc("/uploads/{key:.+}", r.serveUpload).Methods("GET")

	// Realtime
	if svc.Hub != nil {
		r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWs(svc.Hub, w, req)
		})
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	clients := 0
	if r.svc.Hub != nil {
		clients = r.svc.Hub.ClientCount()
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "running",
		"version":   buildinfo.Version,
		"commit":    buildinfo.CommitHash,
		"buildTime": buildinfo.BuildTime,
		"wsClients": clients,
	})
}

func (r *Router) publish(e websocket.Event) {
	if r.svc.Hub != nil {
		r.svc.Hub.Publish(e)
	}
}

// pathID parses a numeric route variable
func pathID(req *http.Request, name string) uint {
	id, _ := strconv.ParseUint(mux.Vars(req)[name], 10, 64)
	return uint(id)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps service errors to status codes
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case models.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Errorf("request failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
