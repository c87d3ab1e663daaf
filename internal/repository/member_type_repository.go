package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-graphql/internal/model"
)

// MemberTypeRepository is read-only; the fixed tier rows are seeded at startup.
type MemberTypeRepository interface {
	FindByID(ctx context.Context, id string) (*model.MemberType, error)
	FindMany(ctx context.Context) ([]*model.MemberType, error)
}

type memberTypeRepository struct {
	db *gorm.DB
}

func NewMemberTypeRepository(db *gorm.DB) MemberTypeRepository {
	return &memberTypeRepository{db: db}
}

func (r *memberTypeRepository) FindByID(ctx context.Context, id string) (*model.MemberType, error) {
	var mt model.MemberType
	if err := r.db.WithContext(ctx).First(&mt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mt, nil
}

func (r *memberTypeRepository) FindMany(ctx context.Context) ([]*model.MemberType, error) {
	res := make([]*model.MemberType, 0)
	err := r.db.WithContext(ctx).Find(&res).Error
	return res, err
}
