package implementation

import (
	"context"
	"time"

	"ai-resumelab-be/internal/entity"
	"ai-resumelab-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriberRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) contract.SubscriberRepository {
	return &SubscriberRepositoryImpl{db: db}
}

func (r *SubscriberRepositoryImpl) Save(ctx context.Context, email string) (bool, error) {
	row := entity.Subscriber{
		Id:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&row)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 0, nil
}
