package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graphql/internal/model"
)

// UserUpdate carries a partial field set; nil pointers leave the stored value
// untouched.
type UserUpdate struct {
	Name    *string
	Balance *float64
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindMany(ctx context.Context) ([]*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, id string, upd UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

// FindByID returns (nil, nil) when no row matches; a miss is not an error here.
func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindMany(ctx context.Context) ([]*model.User, error) {
	res := make([]*model.User, 0)
	err := r.db.WithContext(ctx).Find(&res).Error
	return res, err
}

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) Update(ctx context.Context, id string, upd UserUpdate) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Balance != nil {
		u.Balance = *upd.Balance
	}
	if err := r.db.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
