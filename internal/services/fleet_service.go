package services

import (
	"database/sql"
	"encoding/json"
	"errors"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
)

type FleetService struct {
	Vehicles *repos.VehicleRepo
}

func NewFleetService(vehicles *repos.VehicleRepo) *FleetService {
	return &FleetService{Vehicles: vehicles}
}

func (s *FleetService) List(f domain.VehicleFilters) ([]domain.Vehicle, error) {
	vehicles, err := s.Vehicles.List(f)
	if err != nil {
		return nil, err
	}
	for i := range vehicles {
		decodeSpecs(&vehicles[i])
	}
	return vehicles, nil
}

// Get returns the vehicle with specs decoded and its image gallery loaded.
func (s *FleetService) Get(id string) (domain.Vehicle, error) {
	v, err := s.Vehicles.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Vehicle{}, ErrNotFound
		}
		return domain.Vehicle{}, err
	}
	decodeSpecs(&v)
	if imgs, err := s.Vehicles.ListImages(id); err == nil {
		v.Images = imgs
	}
	return v, nil
}

// Save upserts by id: insert when absent, replace provided fields when
// present.
func (s *FleetService) Save(v domain.Vehicle) (domain.Vehicle, error) {
	if v.Specs != nil {
		b, err := json.Marshal(v.Specs)
		if err != nil {
			return domain.Vehicle{}, err
		}
		v.SpecsJSON = string(b)
	}
	if v.SpecsJSON == "" {
		v.SpecsJSON = "{}"
	}
	if err := s.Vehicles.Upsert(v); err != nil {
		return domain.Vehicle{}, err
	}
	return s.Get(v.ID)
}

func (s *FleetService) BulkSave(vehicles []domain.Vehicle) (int, error) {
	for i := range vehicles {
		if vehicles[i].Specs != nil {
			b, err := json.Marshal(vehicles[i].Specs)
			if err != nil {
				return 0, err
			}
			vehicles[i].SpecsJSON = string(b)
		}
		if vehicles[i].SpecsJSON == "" {
			vehicles[i].SpecsJSON = "{}"
		}
	}
	return s.Vehicles.BulkUpsert(vehicles)
}

func (s *FleetService) Delete(id string) error {
	ok, err := s.Vehicles.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *FleetService) ToggleFeatured(id string) (domain.Vehicle, error) {
	ok, err := s.Vehicles.ToggleFeatured(id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if !ok {
		return domain.Vehicle{}, ErrNotFound
	}
	return s.Get(id)
}

func (s *FleetService) ToggleAvailability(id string) (domain.Vehicle, error) {
	ok, err := s.Vehicles.ToggleAvailability(id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if !ok {
		return domain.Vehicle{}, ErrNotFound
	}
	return s.Get(id)
}

// ---------- Images ----------

func (s *FleetService) ListImages(vehicleID string) ([]domain.VehicleImage, error) {
	return s.Vehicles.ListImages(vehicleID)
}

func (s *FleetService) AddImage(img domain.VehicleImage) (domain.VehicleImage, error) {
	// Only the vehicle's existence matters; a bad id fails the FK.
	id, err := s.Vehicles.AddImage(img)
	if err != nil {
		return domain.VehicleImage{}, err
	}
	img.ID = id
	return img, nil
}

func (s *FleetService) SetPrimaryImage(vehicleID string, imageID int64) error {
	ok, err := s.Vehicles.SetPrimaryImage(vehicleID, imageID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *FleetService) DeleteImage(imageID int64) error {
	ok, err := s.Vehicles.DeleteImage(imageID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func decodeSpecs(v *domain.Vehicle) {
	if v.SpecsJSON == "" || v.SpecsJSON == "{}" {
		return
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(v.SpecsJSON), &m); err == nil {
		v.Specs = m
	}
}
