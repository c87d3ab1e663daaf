package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graphql/internal/model"
)

type ProfileUpdate struct {
	IsMale       *bool
	YearOfBirth  *int
	MemberTypeID *string
}

type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindMany(ctx context.Context) ([]*model.Profile, error)
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	Create(ctx context.Context, p *model.Profile) error
	Update(ctx context.Context, id string, upd ProfileUpdate) (*model.Profile, error)
	Delete(ctx context.Context, id string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepository{db: db} }

func (r *profileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) FindMany(ctx context.Context) ([]*model.Profile, error) {
	res := make([]*model.Profile, 0)
	err := r.db.WithContext(ctx).Find(&res).Error
	return res, err
}

// FindByUserID returns (nil, nil) when the user has no profile. More than one
// row violates ux_profile_user and is reported as a fault, not masked.
func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	res := make([]*model.Profile, 0)
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(2).Find(&res).Error; err != nil {
		return nil, err
	}
	switch len(res) {
	case 0:
		return nil, nil
	case 1:
		return res[0], nil
	default:
		return nil, fmt.Errorf("multiple profiles for user %s", userID)
	}
}

// Create enforces the write-time invariants: the owning user and the member
// type must exist, and the user must not already have a profile.
func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", p.UserID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	if err := r.db.WithContext(ctx).Model(&model.MemberType{}).Where("id = ?", p.MemberTypeID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return fmt.Errorf("member type: %w", ErrNotFound)
	}
	if err := r.db.WithContext(ctx).Model(&model.Profile{}).Where("user_id = ?", p.UserID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return fmt.Errorf("profile for user: %w", ErrDuplicate)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepository) Update(ctx context.Context, id string, upd ProfileUpdate) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if upd.MemberTypeID != nil {
		var cnt int64
		if err := r.db.WithContext(ctx).Model(&model.MemberType{}).Where("id = ?", *upd.MemberTypeID).Count(&cnt).Error; err != nil {
			return nil, err
		}
		if cnt == 0 {
			return nil, fmt.Errorf("member type: %w", ErrNotFound)
		}
		p.MemberTypeID = *upd.MemberTypeID
	}
	if upd.IsMale != nil {
		p.IsMale = *upd.IsMale
	}
	if upd.YearOfBirth != nil {
		p.YearOfBirth = *upd.YearOfBirth
	}
	if err := r.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Profile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
