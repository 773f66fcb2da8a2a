// Package equipment manages stations and their network devices.
package equipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xelth-com/linerecords/internal/calc"
	"github.com/xelth-com/linerecords/internal/logs"
	"github.com/xelth-com/linerecords/internal/models"
	"gorm.io/gorm"
)

var log = logs.WithComponent("equipment")

// Defaults of a freshly created station
const (
	DefaultPowerSupply = "AC 220V 50HZ single phase"
	DefaultPowerKW     = "1"
	DefaultAirSupply   = "no"
	DeviceIPPrefix     = "172.19.123."
)

// ProgressSource supplies the validation progress shown next to an equipment
type ProgressSource interface {
	ValidationProgress(ctx context.Context, equipmentID uint) (calc.Summary, error)
}

// Service manages equipment records
type Service struct {
	db       *gorm.DB
	progress ProgressSource
}

// NewService creates an equipment service
func NewService(db *gorm.DB, progress ProgressSource) *Service {
	return &Service{db: db, progress: progress}
}

// Overview is one row of the equipment list
type Overview struct {
	models.Equipment
	Validation calc.Summary `json:"validation"`
	Devices    calc.Summary `json:"deviceCompletion"`
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, models.ErrNotFound)
	}
	return err
}

// List returns all equipment ordered by id with their progress
func (s *Service) List(ctx context.Context) ([]Overview, error) {
	var list []models.Equipment
	if err := s.db.WithContext(ctx).Preload("Devices", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Order("id").Find(&list).Error; err != nil {
		return nil, err
	}

	out := make([]Overview, 0, len(list))
	for _, eq := range list {
		v, err := s.progress.ValidationProgress(ctx, eq.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, Overview{
			Equipment:  eq,
			Validation: v,
			Devices:    DeviceCompletion(eq.Devices),
		})
	}
	return out, nil
}

// Get returns one equipment with its devices
func (s *Service) Get(ctx context.Context, id uint) (*models.Equipment, error) {
	var eq models.Equipment
	if err := s.db.WithContext(ctx).Preload("Devices", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&eq, id).Error; err != nil {
		return nil, notFound(err, "equipment", id)
	}
	return &eq, nil
}

// DeviceCompletion is the share of devices with type, name and IP filled in
func DeviceCompletion(devices []models.EquipmentDevice) calc.Summary {
	complete := 0
	for _, d := range devices {
		if d.IsComplete() {
			complete++
		}
	}
	return calc.Summarize(complete, len(devices))
}

func defaultDevices(equipmentID uint, n int64) []models.EquipmentDevice {
	station := fmt.Sprintf("NEW-%d", n)
	ip := func(base int64) string {
		return fmt.Sprintf("%s%d", DeviceIPPrefix, base+n)
	}
	return []models.EquipmentDevice{
		{EquipmentID: equipmentID, DeviceType: "PLC 1217C DC/DC/DC", Name: station + "=PLC-KF1", IPAddress: ip(100)},
		{EquipmentID: equipmentID, DeviceType: "WAGO", Name: station + "=PLC-KF2", IPAddress: ip(150)},
		{EquipmentID: equipmentID, DeviceType: "HMI KTP700", Name: "KTP700_" + station, IPAddress: ip(200)},
		{EquipmentID: equipmentID, DeviceType: "Vision Sensor", Name: station + "-ST10-CR", IPAddress: ip(250)},
	}
}

// Create adds a station named NEW-n, where n is the current count plus one,
// together with its four default devices.
// TODO: derive n from max(id) so deletions cannot produce duplicate station names.
func (s *Service) Create(ctx context.Context) (*models.Equipment, error) {
	var eq models.Equipment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Equipment{}).Count(&count).Error; err != nil {
			return err
		}
		n := count + 1

		eq = models.Equipment{
			Station:       fmt.Sprintf("NEW-%d", n),
			Owner:         models.OwnerPreh,
			PowerSupply:   DefaultPowerSupply,
			PowerKW:       DefaultPowerKW,
			AirSupplyBar:  DefaultAirSupply,
			AirSupplyDiam: DefaultAirSupply,
		}
		if err := tx.Create(&eq).Error; err != nil {
			return err
		}

		devices := defaultDevices(eq.ID, n)
		if err := tx.Create(&devices).Error; err != nil {
			return err
		}
		eq.Devices = devices
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{"id": eq.ID, "station": eq.Station}).Info("equipment created")
	return &eq, nil
}

// FieldResult is the outcome of a single-field edit
type FieldResult struct {
	Equipment  models.Equipment `json:"equipment"`
	Validation calc.Summary     `json:"validation"`
}

// UpdateField writes one enumerated field of the equipment.
// Unknown fields and invalid values are rejected before any write.
func (s *Service) UpdateField(ctx context.Context, id uint, field, value string) (*FieldResult, error) {
	tx := s.db.WithContext(ctx)

	var eq models.Equipment
	if err := tx.First(&eq, id).Error; err != nil {
		return nil, notFound(err, "equipment", id)
	}
	update, err := eq.SetField(field, value)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&models.Equipment{ID: id}).Update(update.Column, update.Value).Error; err != nil {
		return nil, err
	}

	progress, err := s.progress.ValidationProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FieldResult{Equipment: eq, Validation: progress}, nil
}

// Delete removes the equipment with its devices and all of its results
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("equipment_id = ?", id).Delete(&models.ValidationResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("equipment_id = ?", id).Delete(&models.DocumentationResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("equipment_id = ?", id).Delete(&models.EquipmentDevice{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Equipment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("equipment %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithField("id", id).Info("equipment deleted")
	return nil
}
