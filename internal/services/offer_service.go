package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
)

type OfferService struct {
	Offers *repos.OfferRepo
}

func NewOfferService(offers *repos.OfferRepo) *OfferService {
	return &OfferService{Offers: offers}
}

func (s *OfferService) List(activeOnly bool) ([]domain.Offer, error) {
	offers, err := s.Offers.List(activeOnly)
	if err != nil {
		return nil, err
	}
	for i := range offers {
		decodeScopes(&offers[i])
	}
	return offers, nil
}

func (s *OfferService) Get(id string) (domain.Offer, error) {
	o, err := s.Offers.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Offer{}, ErrNotFound
		}
		return domain.Offer{}, err
	}
	decodeScopes(&o)
	return o, nil
}

// GetByCode applies the redeemability gate: active, inside the validity
// window, under the usage limit. Each failure mode gets its own error so
// clients can show "expired" vs "limit reached".
func (s *OfferService) GetByCode(code string) (domain.Offer, error) {
	o, err := s.Offers.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Offer{}, ErrNotFound
		}
		return domain.Offer{}, err
	}
	if !o.IsActive {
		return domain.Offer{}, ErrOfferInactive
	}
	if o.ValidUntil != "" {
		until, perr := time.Parse(time.RFC3339, o.ValidUntil)
		if perr == nil && until.Before(time.Now()) {
			return domain.Offer{}, ErrOfferExpired
		}
	}
	if o.UsageLimit != nil && o.UsageCount >= *o.UsageLimit {
		return domain.Offer{}, ErrOfferLimitReached
	}
	decodeScopes(&o)
	return o, nil
}

// Redeem increments usage_count and records the redemption atomically. When
// the conditional update matches nothing the offer is re-read to report the
// precise reason.
func (s *OfferService) Redeem(code string, red domain.OfferRedemption) (domain.Offer, error) {
	o, err := s.Offers.GetByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Offer{}, ErrNotFound
		}
		return domain.Offer{}, err
	}

	red.OfferID = o.ID
	red.OfferCode = o.OfferCode
	ok, err := s.Offers.Redeem(red)
	if err != nil {
		return domain.Offer{}, err
	}
	if !ok {
		// The guard predicate rejected the increment; classify why.
		if _, gerr := s.GetByCode(code); gerr != nil {
			return domain.Offer{}, gerr
		}
		return domain.Offer{}, ErrOfferLimitReached
	}
	return s.Get(o.ID)
}

func (s *OfferService) Save(o domain.Offer) (domain.Offer, error) {
	if err := encodeScopes(&o); err != nil {
		return domain.Offer{}, err
	}
	if o.AppliesTo == "" {
		o.AppliesTo = domain.AppliesAll
	}
	// Codes are stored upper-case so the normalized lookup always matches.
	o.OfferCode = strings.ToUpper(strings.TrimSpace(o.OfferCode))
	if err := s.Offers.Upsert(o); err != nil {
		return domain.Offer{}, err
	}
	return s.Get(o.ID)
}

func (s *OfferService) BulkSave(offers []domain.Offer) (int, error) {
	for i := range offers {
		if err := encodeScopes(&offers[i]); err != nil {
			return 0, err
		}
		if offers[i].AppliesTo == "" {
			offers[i].AppliesTo = domain.AppliesAll
		}
		offers[i].OfferCode = strings.ToUpper(strings.TrimSpace(offers[i].OfferCode))
	}
	return s.Offers.BulkUpsert(offers)
}

func (s *OfferService) Delete(id string) error {
	ok, err := s.Offers.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *OfferService) ToggleActive(id string) (domain.Offer, error) {
	ok, err := s.Offers.ToggleActive(id)
	if err != nil {
		return domain.Offer{}, err
	}
	if !ok {
		return domain.Offer{}, ErrNotFound
	}
	return s.Get(id)
}

func (s *OfferService) ListRedemptions(offerID string) ([]domain.OfferRedemption, error) {
	return s.Offers.ListRedemptions(offerID)
}

func decodeScopes(o *domain.Offer) {
	if o.ApplicableCategoriesJSON != "" && o.ApplicableCategoriesJSON != "[]" {
		_ = json.Unmarshal([]byte(o.ApplicableCategoriesJSON), &o.ApplicableCategories)
	}
	if o.ApplicableVehicleIDsJSON != "" && o.ApplicableVehicleIDsJSON != "[]" {
		_ = json.Unmarshal([]byte(o.ApplicableVehicleIDsJSON), &o.ApplicableVehicleIDs)
	}
}

func encodeScopes(o *domain.Offer) error {
	if o.ApplicableCategories != nil {
		b, err := json.Marshal(o.ApplicableCategories)
		if err != nil {
			return err
		}
		o.ApplicableCategoriesJSON = string(b)
	}
	if o.ApplicableCategoriesJSON == "" {
		o.ApplicableCategoriesJSON = "[]"
	}
	if o.ApplicableVehicleIDs != nil {
		b, err := json.Marshal(o.ApplicableVehicleIDs)
		if err != nil {
			return err
		}
		o.ApplicableVehicleIDsJSON = string(b)
	}
	if o.ApplicableVehicleIDsJSON == "" {
		o.ApplicableVehicleIDsJSON = "[]"
	}
	return nil
}
