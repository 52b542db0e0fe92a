// file: models/attachment.go
package models

import (
	"time"
)

type AttachmentStorage string
type AttachmentStatus string

const (
	StorageURL    AttachmentStorage = "url"
	StorageObject AttachmentStorage = "object"

	AttachmentStatusActive   AttachmentStatus = "active"
	AttachmentStatusArchived AttachmentStatus = "archived"
)

// Attachment 只保存附件元数据，文件本体由外部存储负责，
// 通过 FileID 引用。
type Attachment struct {
	ID          uint64            `gorm:"primarykey"`
	ChallengeID uint32            `gorm:"index;not null"`
	FileID      string            `gorm:"size:36;unique;not null"`
	Storage     AttachmentStorage `gorm:"size:20;not null"`
	URL         string            `gorm:"size:2048"`
	FileName    string            `gorm:"size:255;not null"`
	ContentType string            `gorm:"size:255;not null"`
	FileSize    uint64            `gorm:"default:0"`
	SHA256      string            `gorm:"size:64"`
	Status      AttachmentStatus  `gorm:"size:20;default:'active'"`
	SortOrder   uint              `gorm:"default:0"`
	CreatedBy   uint32            `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Attachment) TableName() string {
	return "uitctf_attachment"
}
