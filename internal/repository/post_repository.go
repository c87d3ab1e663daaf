package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graphql/internal/model"
)

type PostUpdate struct {
	Title   *string
	Content *string
}

type PostRepository interface {
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindMany(ctx context.Context) ([]*model.Post, error)
	FindByAuthorID(ctx context.Context, authorID string) ([]*model.Post, error)
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, id string, upd PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) FindMany(ctx context.Context) ([]*model.Post, error) {
	res := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).Find(&res).Error
	return res, err
}

func (r *postRepository) FindByAuthorID(ctx context.Context, authorID string) ([]*model.Post, error) {
	res := make([]*model.Post, 0)
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&res).Error
	return res, err
}

// Create rejects a dangling author reference up front so the caller sees a
// clean not-found instead of a driver constraint error.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", p.AuthorID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return ErrNotFound
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postRepository) Update(ctx context.Context, id string, upd PostUpdate) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Content != nil {
		p.Content = *upd.Content
	}
	if err := r.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
