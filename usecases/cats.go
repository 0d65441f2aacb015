package usecases

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cat-server/entities"
	"cat-server/repositories"
	"cat-server/utils"

	"gorm.io/gorm"
)

// AuditSink receives one event per successful mutation. Implemented by
// services.AuditRecorder; nil sinks are allowed in tests.
type AuditSink interface {
	Record(actorID, action, resource, resourceID string)
}

type CatUseCase struct {
	CatRepo  repositories.CatRepository
	UserRepo repositories.UserRepository
	Recorder AuditSink
}

func NewCatUseCase(catRepo repositories.CatRepository, userRepo repositories.UserRepository, recorder AuditSink) *CatUseCase {
	return &CatUseCase{CatRepo: catRepo, UserRepo: userRepo, Recorder: recorder}
}

// CatPatch carries the owner-updatable fields; zero values are left untouched.
type CatPatch struct {
	CatName   string
	Weight    float64
	Birthdate time.Time
}

// GetAll retrieves every cat with owner identity expanded. An empty table is
// an empty slice, not an error.
func (uc *CatUseCase) GetAll() ([]entities.Cat, error) {
	return uc.CatRepo.GetAll()
}

// GetByID retrieves one cat with owner expanded.
func (uc *CatUseCase) GetByID(id string) (*entities.Cat, error) {
	cat, err := uc.CatRepo.GetByID(id)
	if err != nil {
		return nil, mapCatStoreError(err)
	}
	return cat, nil
}

// GetByOwner retrieves the authenticated caller's cats.
func (uc *CatUseCase) GetByOwner(ownerID string) ([]entities.Cat, error) {
	if ownerID == "" {
		return nil, utils.NewForbiddenError("token not valid")
	}
	return uc.CatRepo.GetByOwner(ownerID)
}

// GetWithinBounds retrieves cats inside the box spanned by two corners given
// as "lat,lon" pairs.
func (uc *CatUseCase) GetWithinBounds(topRight, bottomLeft string) ([]entities.Cat, error) {
	trLat, trLng, err := parseCorner(topRight)
	if err != nil {
		return nil, utils.NewCustomError(http.StatusBadRequest, "invalid coordinate pair: topRight")
	}
	blLat, blLng, err := parseCorner(bottomLeft)
	if err != nil {
		return nil, utils.NewCustomError(http.StatusBadRequest, "invalid coordinate pair: bottomLeft")
	}

	box := repositories.BoundingBox{
		MinLat: min(trLat, blLat),
		MaxLat: max(trLat, blLat),
		MinLng: min(trLng, blLng),
		MaxLng: max(trLng, blLng),
	}
	return uc.CatRepo.GetWithinBounds(box)
}

// Create persists a new cat owned by the caller. The owner always comes from
// the session identity, never the request body.
func (uc *CatUseCase) Create(cat *entities.Cat, ownerID string) error {
	if ownerID == "" {
		return utils.NewForbiddenError("token not valid")
	}
	if !cat.Birthdate.IsZero() && cat.Birthdate.After(time.Now()) {
		return utils.NewCustomError(http.StatusBadRequest, "must be in the past: birthdate")
	}

	cat.OwnerID = ownerID
	if err := uc.CatRepo.Create(cat); err != nil {
		return err
	}
	uc.record(ownerID, "cat.created", "cat", cat.ID)
	return nil
}

// UpdateByOwner updates a cat only when id and owner match one record; a miss
// is not found regardless of whether the id exists under another owner.
func (uc *CatUseCase) UpdateByOwner(id, ownerID string, patch CatPatch) (*entities.Cat, error) {
	cat, err := uc.CatRepo.GetOwned(id, ownerID)
	if err != nil {
		return nil, mapCatStoreError(err)
	}

	if patch.CatName != "" {
		cat.CatName = patch.CatName
	}
	if patch.Weight > 0 {
		cat.Weight = patch.Weight
	}
	if !patch.Birthdate.IsZero() {
		if patch.Birthdate.After(time.Now()) {
			return nil, utils.NewCustomError(http.StatusBadRequest, "must be in the past: birthdate")
		}
		cat.Birthdate = patch.Birthdate
	}

	if err := uc.CatRepo.Update(cat); err != nil {
		return nil, err
	}
	uc.record(ownerID, "cat.updated", "cat", id)
	return cat, nil
}

// DeleteByOwner deletes a cat with the same matched-query semantics as
// UpdateByOwner and returns the deleted record.
func (uc *CatUseCase) DeleteByOwner(id, ownerID string) (*entities.Cat, error) {
	cat, err := uc.CatRepo.GetOwned(id, ownerID)
	if err != nil {
		return nil, mapCatStoreError(err)
	}
	if err := uc.CatRepo.Delete(id); err != nil {
		return nil, err
	}
	uc.record(ownerID, "cat.deleted", "cat", id)
	return cat, nil
}

// UpdateOwnerAdmin reassigns a cat to a new owner, bypassing the ownership
// filter. The role gate lives in the router middleware; the new owner must
// exist.
func (uc *CatUseCase) UpdateOwnerAdmin(id, newOwnerID, actorID string) (*entities.Cat, error) {
	cat, err := uc.CatRepo.GetByID(id)
	if err != nil {
		return nil, mapCatStoreError(err)
	}
	if _, err := uc.UserRepo.GetByID(newOwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("No user found")
		}
		return nil, err
	}

	cat.OwnerID = newOwnerID
	cat.Owner = nil
	if err := uc.CatRepo.Update(cat); err != nil {
		return nil, err
	}
	uc.record(actorID, "cat.owner_changed", "cat", id)
	return cat, nil
}

// DeleteAdmin deletes any cat regardless of owner.
func (uc *CatUseCase) DeleteAdmin(id, actorID string) (*entities.Cat, error) {
	cat, err := uc.CatRepo.GetByID(id)
	if err != nil {
		return nil, mapCatStoreError(err)
	}
	if err := uc.CatRepo.Delete(id); err != nil {
		return nil, err
	}
	uc.record(actorID, "cat.deleted", "cat", id)
	return cat, nil
}

func (uc *CatUseCase) record(actorID, action, resource, resourceID string) {
	if uc.Recorder != nil {
		uc.Recorder.Record(actorID, action, resource, resourceID)
	}
}

func mapCatStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError("No cat found")
	}
	return err
}

// parseCorner splits a "lat,lon" query value into its two coordinates.
func parseCorner(pair string) (lat, lng float64, err error) {
	parts := strings.Split(strings.TrimSpace(pair), ",")
	if len(parts) != 2 {
		return 0, 0, errors.New("expected lat,lon")
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	// ParseFloat accepts NaN and Inf, which would slip past the range checks
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0, 0, errors.New("coordinates must be finite")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, errors.New("coordinates out of range")
	}
	return lat, lng, nil
}
