package usecases

import (
	"errors"
	"net/http"

	"cat-server/entities"
	"cat-server/repositories"
	"cat-server/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserUseCase struct {
	UserRepo   repositories.UserRepository
	Recorder   AuditSink
	BcryptCost int
	AdminEmail string
}

func NewUserUseCase(repo repositories.UserRepository, recorder AuditSink, bcryptCost int, adminEmail string) *UserUseCase {
	return &UserUseCase{
		UserRepo:   repo,
		Recorder:   recorder,
		BcryptCost: bcryptCost,
		AdminEmail: adminEmail,
	}
}

// UserPatch carries the self-service update fields; empty values are left
// untouched.
type UserPatch struct {
	UserName string
	Email    string
	Password string
}

// Register creates a new account with a hashed password. An account whose
// email matches the configured admin email is created with the admin role,
// which is how the first admin gets bootstrapped.
func (uc *UserUseCase) Register(userName, email, password string) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		UserName: userName,
		Email:    email,
		Password: string(hash),
		Role:     entities.RoleUser,
	}
	if uc.AdminEmail != "" && email == uc.AdminEmail {
		user.Role = entities.RoleAdmin
	}

	if err := uc.UserRepo.Create(user); err != nil {
		return nil, mapUserStoreError(err)
	}
	uc.record(user.ID, "user.created", "user", user.ID)
	return user, nil
}

// GetByID retrieves one user; password and role never serialize.
func (uc *UserUseCase) GetByID(id string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		return nil, mapUserStoreError(err)
	}
	return user, nil
}

// GetAll retrieves every user. An empty table is an empty slice, not an error.
func (uc *UserUseCase) GetAll() ([]entities.User, error) {
	return uc.UserRepo.GetAll()
}

// UpdateCurrent applies a patch to the authenticated caller's own record,
// re-hashing the password when one is supplied.
func (uc *UserUseCase) UpdateCurrent(id string, patch UserPatch) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		return nil, mapUserStoreError(err)
	}

	if patch.UserName != "" {
		user.UserName = patch.UserName
	}
	if patch.Email != "" {
		user.Email = patch.Email
	}
	if patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(patch.Password), uc.BcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := uc.UserRepo.Update(user); err != nil {
		return nil, mapUserStoreError(err)
	}
	uc.record(id, "user.updated", "user", id)
	return user, nil
}

// DeleteCurrent removes the authenticated caller's own record and returns it.
func (uc *UserUseCase) DeleteCurrent(id string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		return nil, mapUserStoreError(err)
	}
	if err := uc.UserRepo.Delete(id); err != nil {
		return nil, err
	}
	uc.record(id, "user.deleted", "user", id)
	return user, nil
}

// Authenticate validates credentials for login. Failures are deliberately
// indistinguishable between unknown user and wrong password.
func (uc *UserUseCase) Authenticate(userName, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByUserName(userName)
	if err != nil {
		return nil, utils.NewNotAuthorizedError("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.NewNotAuthorizedError("Invalid username or password")
	}
	return user, nil
}

func (uc *UserUseCase) record(actorID, action, resource, resourceID string) {
	if uc.Recorder != nil {
		uc.Recorder.Record(actorID, action, resource, resourceID)
	}
}

func mapUserStoreError(err error) error {
	var dup *repositories.DuplicateError
	if errors.As(err, &dup) {
		return utils.NewCustomError(http.StatusBadRequest, dup.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError("No user found")
	}
	return err
}
