package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/platekeep/recipedocs-backend/internal/logger"
	"github.com/platekeep/recipedocs-backend/internal/types"
)

type UserDocumentRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.UserDocument, error)
}

type userDocumentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserDocumentRepo(db *gorm.DB, baseLog *logger.Logger) UserDocumentRepo {
	repoLog := baseLog.With("repo", "UserDocumentRepo")
	return &userDocumentRepo{db: db, log: repoLog}
}

func (r *userDocumentRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.UserDocument, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var doc types.UserDocument
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
