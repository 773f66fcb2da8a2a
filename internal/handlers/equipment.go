package handlers

import (
	"net/http"

	"github.com/xelth-com/linerecords/internal/services/equipment"
	"github.com/xelth-com/linerecords/internal/websocket"
)

func (r *Router) listEquipment(w http.ResponseWriter, req *http.Request) {
	list, err := r.svc.Equipment.List(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if list == nil {
		list = []equipment.Overview{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (r *Router) createEquipment(w http.ResponseWriter, req *http.Request) {
	eq, err := r.svc.Equipment.Create(req.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventEquipment, EquipmentID: eq.ID, Kind: "created"})
	respondJSON(w, http.StatusCreated, eq)
}

func (r *Router) getEquipment(w http.ResponseWriter, req *http.Request) {
	eq, err := r.svc.Equipment.Get(req.Context(), pathID(req, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eq)
}

func (r *Router) deleteEquipment(w http.ResponseWriter, req *http.Request) {
	id := pathID(req, "id")
	if err := r.svc.Equipment.Delete(req.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	r.publish(websocket.Event{Type: websocket.EventEquipment, EquipmentID: id, Kind: "deleted"})
	w.WriteHeader(http.StatusNoContent)
}

// updateEquipmentField answers with the validation progress of the station
func (r *Router) updateEquipmentField(w http.ResponseWriter, req *http.Request) {
	edit, err := readFieldEdit(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	res, err := r.svc.Equipment.UpdateField(req.Context(), pathID(req, "id"), edit.Field, edit.Value)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	progress := res.Validation
	r.publish(websocket.Event{
		Type:        websocket.EventEquipment,
		EquipmentID: res.Equipment.ID,
		Kind:        "updated",
		Progress:    &progress,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"percentage": res.Validation.Percentage,
		"band":       res.Validation.Band,
		"equipment":  res.Equipment,
	})
}

func (r *Router) getEquipmentProgress(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	id := pathID(req, "id")

	validation, err := r.svc.Checklist.ValidationProgress(ctx, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	documentation, err := r.svc.Checklist.DocumentationProgress(ctx, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	devices, err := r.svc.Equipment.Devices(ctx, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"validation":       validation,
		"documentation":    documentation,
		"deviceCompletion": equipment.DeviceCompletion(devices),
	})
}

func (r *Router) listDevices(w http.ResponseWriter, req *http.Request) {
	devices, err := r.svc.Equipment.Devices(req.Context(), pathID(req, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"devices":          devices,
		"deviceCompletion": equipment.DeviceCompletion(devices),
	})
}

func (r *Router) addDevice(w http.ResponseWriter, req *http.Request) {
	d, err := r.svc.Equipment.AddDevice(req.Context(), pathID(req, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

// updateDeviceField answers with the stored value
func (r *Router) updateDeviceField(w http.ResponseWriter, req *http.Request) {
	edit, err := readFieldEdit(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	res, err := r.svc.Equipment.UpdateDeviceField(req.Context(), pathID(req, "id"), edit.Field, edit.Value)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	progress := res.Completion
	r.publish(websocket.Event{
		Type:        websocket.EventProgress,
		EquipmentID: res.Device.EquipmentID,
		Kind:        "devices",
		Progress:    &progress,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"value":            edit.Value,
		"device":           res.Device,
		"deviceCompletion": res.Completion,
	})
}

func (r *Router) deleteDevice(w http.ResponseWriter, req *http.Request) {
	if _, err := r.svc.Equipment.DeleteDevice(req.Context(), pathID(req, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
