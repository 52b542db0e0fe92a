// file: services/event_service.go
package services

import (
	"errors"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"gorm.io/gorm"
)

// CurrentEvent 查询当前时刻进行中的赛事；没有则返回 (nil, nil)
func CurrentEvent(now time.Time) (*models.Event, error) {
	var event models.Event
	err := database.DB.
		Where("starts_at <= ? AND ends_at >= ?", now, now).
		Order("starts_at desc").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}
