package equipment

import (
	"context"

	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/models"
)

// Devices lists the devices of an equipment in creation order
func (s *Service) Devices(ctx context.Context, equipmentID uint) ([]models.EquipmentDevice, error) {
	eq, err := s.Get(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	return eq.Devices, nil
}

// AddDevice appends a PLC placeholder named after the station
func (s *Service) AddDevice(ctx context.Context, equipmentID uint) (*models.EquipmentDevice, error) {
	tx := s.db.WithContext(ctx)

	var eq models.Equipment
	if err := tx.First(&eq, equipmentID).Error; err != nil {
		return nil, notFound(err, "equipment", equipmentID)
	}
	d := models.EquipmentDevice{
		EquipmentID: eq.ID,
		DeviceType:  "PLC",
		Name:        eq.Station + "-PLC",
	}
	if err := tx.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// DeviceFieldResult is a device edit with the recomputed completion of its equipment
type DeviceFieldResult struct {
	Device     models.EquipmentDevice `json:"device"`
	Completion calc.Summary           `json:"deviceCompletion"`
}

// UpdateDeviceField writes one enumerated field of the device
func (s *Service) UpdateDeviceField(ctx context.Context, id uint, field, value string) (*DeviceFieldResult, error) {
	tx := s.db.WithContext(ctx)

	var d models.EquipmentDevice
	if err := tx.First(&d, id).Error; err != nil {
		return nil, notFound(err, "device", id)
	}
	update, err := d.SetField(field, value)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&models.EquipmentDevice{ID: id}).Update(update.Column, update.Value).Error; err != nil {
		return nil, err
	}

	devices, err := s.Devices(ctx, d.EquipmentID)
	if err != nil {
		return nil, err
	}
	return &DeviceFieldResult{Device: d, Completion: DeviceCompletion(devices)}, nil
}

// DeleteDevice removes one device and returns the id of its equipment
func (s *Service) DeleteDevice(ctx context.Context, id uint) (uint, error) {
	tx := s.db.WithContext(ctx)

	var d models.EquipmentDevice
	if err := tx.First(&d, id).Error; err != nil {
		return 0, notFound(err, "device", id)
	}
	if err := tx.Delete(&d).Error; err != nil {
		return 0, err
	}
	return d.EquipmentID, nil
}
