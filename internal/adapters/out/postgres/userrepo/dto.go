// Package userrepo provides data transfer objects and mapping functions for
// user persistence. The email column carries a unique index so the database
// is the final arbiter of registration uniqueness.
package userrepo

import (
	"time"

	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user identities.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// TableName specifies the database table name for user entities.
func (UserDTO) TableName() string {
	return "users"
}

// fromDomain converts a user entity to its database representation.
func fromDomain(user *account.User) UserDTO {
	return UserDTO{
		ID:           user.ID().Bytes(),
		Name:         user.Name(),
		Email:        user.Email(),
		PasswordHash: user.PasswordHash(),
		Role:         user.Role().String(),
	}
}

// toDomain converts a database DTO back into a user entity.
func toDomain(dto UserDTO) (*account.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return account.RestoreUser(id, dto.Name, dto.Email, dto.PasswordHash, role)
}
