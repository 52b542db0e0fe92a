// file: models/event.go
package models

import (
	"time"
)

// EventStatus 定义赛事状态
type EventStatus string

const (
	EventStatusUpcoming EventStatus = "upcoming"
	EventStatusRunning  EventStatus = "running"
	EventStatusEnded    EventStatus = "ended"
)

// Event 对应 uitctf_event 表，一场比赛即一个时间段
type Event struct {
	ID          uint32    `gorm:"primarykey" json:"id,omitempty"`
	EventName   string    `gorm:"size:100;not null" json:"event_name"`
	Description string    `gorm:"type:text" json:"description"`
	StartsAt    time.Time `gorm:"not null;index" json:"starts_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndsAt      time.Time `gorm:"not null;index" json:"ends_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

func (Event) TableName() string {
	return "uitctf_event"
}

// StatusAt 根据时钟推导赛事状态
func (e *Event) StatusAt(now time.Time) EventStatus {
	if now.Before(e.StartsAt) {
		return EventStatusUpcoming
	}
	if now.After(e.EndsAt) {
		return EventStatusEnded
	}
	return EventStatusRunning
}

// IsRunning 判断赛事是否进行中（闭区间）
func (e *Event) IsRunning(now time.Time) bool {
	return e.StatusAt(now) == EventStatusRunning
}
