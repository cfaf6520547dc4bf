package implementation

import (
	"context"
	"time"

	"ai-resumelab-be/internal/entity"
	"ai-resumelab-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitorRepositoryImpl struct {
	db *gorm.DB
}

func NewVisitorRepository(db *gorm.DB) contract.VisitorRepository {
	return &VisitorRepositoryImpl{db: db}
}

func (r *VisitorRepositoryImpl) RecordSeen(ctx context.Context, uid string, seenAt time.Time) error {
	row := entity.VisitorLog{UID: uid, FirstSeenAt: seenAt}
	// Only the first sighting counts; later visits are no-ops.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

func (r *VisitorRepositoryImpl) CountUnique(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.VisitorLog{}).Count(&count).Error
	return count, err
}
