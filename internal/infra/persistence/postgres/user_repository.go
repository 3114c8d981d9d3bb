// Package postgres contains the GORM implementation of the persistence layer.
// PostgreSQL is the production store; SQLite serves local runs and tests.
package postgres

import (
	"identity/internal/domain/entity"
	"identity/internal/domain/repository"
	"identity/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// userColumns maps the filterable user fields to their columns.
var userColumns = columnMap{
	repository.UserFieldID:             "id",
	repository.UserFieldUsername:       "username",
	repository.UserFieldEmail:          "email",
	repository.UserFieldFirstName:      "first_name",
	repository.UserFieldLastName:       "last_name",
	repository.UserFieldPhoneNumber:    "phone_number",
	repository.UserFieldEmailConfirmed: "email_confirmed",
}

// userRepository implements repository.UserRepository on the users table.
type userRepository struct {
	*gormRepository[*entity.User, model.UserModel]
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		gormRepository: &gormRepository[*entity.User, model.UserModel]{
			db:         db,
			name:       "user",
			columns:    userColumns,
			notFound:   repository.ErrUserNotFound,
			toDomain:   toUserDomain,
			fromDomain: fromUserDomain,
		},
	}
}

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		Base:           toBaseDomain(data.BaseModel),
		Username:       data.Username,
		Email:          data.Email,
		PasswordHash:   data.PasswordHash,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		PhoneNumber:    data.PhoneNumber,
		EmailConfirmed: data.EmailConfirmed,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		BaseModel:      fromBaseDomain(data.Base),
		Username:       data.Username,
		Email:          data.Email,
		PasswordHash:   data.PasswordHash,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		PhoneNumber:    data.PhoneNumber,
		EmailConfirmed: data.EmailConfirmed,
	}
}

func toBaseDomain(data model.BaseModel) entity.Base {
	return entity.Base{
		ID:         data.ID,
		CreatedAt:  data.CreatedAt,
		ModifiedAt: data.ModifiedAt,
		CreatedBy:  data.CreatedBy,
		ModifiedBy: data.ModifiedBy,
		IsDeleted:  data.IsDeleted,
	}
}

func fromBaseDomain(data entity.Base) model.BaseModel {
	return model.BaseModel{
		ID:         data.ID,
		CreatedAt:  data.CreatedAt,
		ModifiedAt: data.ModifiedAt,
		CreatedBy:  data.CreatedBy,
		ModifiedBy: data.ModifiedBy,
		IsDeleted:  data.IsDeleted,
	}
}
