// file: models/challenge.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type ChallengeState string
type ChallengeCategory string

const (
	ChallengeStateVisible ChallengeState = "visible"
	ChallengeStateHidden  ChallengeState = "hidden"

	CategoryWeb      ChallengeCategory = "Web Exploitation"
	CategoryCrypto   ChallengeCategory = "Cryptography"
	CategoryForensic ChallengeCategory = "Forensics"
	CategoryPwn      ChallengeCategory = "Pwn"
	CategoryReverse  ChallengeCategory = "Reverse Engineering"
	CategoryOSINT    ChallengeCategory = "OSINT"
	CategoryMisc     ChallengeCategory = "Misc"
	CategoryStego    ChallengeCategory = "Steganography"

	// flagHashCost 与出题时 bcrypt.GenerateFromPassword 保持一致
	flagHashCost = 10
)

// Categories 固定的题目分类集合
var Categories = map[ChallengeCategory]bool{
	CategoryWeb:      true,
	CategoryCrypto:   true,
	CategoryForensic: true,
	CategoryPwn:      true,
	CategoryReverse:  true,
	CategoryOSINT:    true,
	CategoryMisc:     true,
	CategoryStego:    true,
}

type Challenge struct {
	ID            uint32            `gorm:"primarykey"`
	EventID       uint32            `gorm:"not null;index"`
	Event         Event             `gorm:"foreignKey:EventID"`
	ChallengeName string            `gorm:"size:100;unique;not null"`
	Category      ChallengeCategory `gorm:"size:50;not null"`
	Author        string            `gorm:"size:50"`
	Description   string            `gorm:"type:text"`
	Points        uint              `gorm:"not null"`
	FlagHash      string            `gorm:"size:255;not null" json:"-"`
	State         ChallengeState    `gorm:"size:20;default:'hidden'"`
	StartsAt      time.Time         `gorm:"not null;index"`
	EndsAt        time.Time         `gorm:"not null;index"`
	Attachments   []Attachment      `gorm:"foreignKey:ChallengeID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Challenge) TableName() string {
	return "uitctf_challenge"
}

// IsActive 赛时窗口判定：starts_at <= now <= ends_at（两端闭区间）
func (ch *Challenge) IsActive(now time.Time) bool {
	return !now.Before(ch.StartsAt) && !now.After(ch.EndsAt)
}

// IsExpired 练习模式判定：窗口已关闭的题目对所有用户开放练习
func (ch *Challenge) IsExpired(now time.Time) bool {
	return ch.EndsAt.Before(now)
}

// SetFlag 对明文 Flag 做单向哈希后存储，明文不落库
func (ch *Challenge) SetFlag(flag string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(flag), flagHashCost)
	if err != nil {
		return err
	}
	ch.FlagHash = string(hash)
	return nil
}

// CheckFlag 校验提交的 Flag 是否正确。纯函数，不产生副作用；
// 判重不在这里做（那是解题台账的职责）。
func (ch *Challenge) CheckFlag(flag string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(ch.FlagHash), []byte(flag))
	return err == nil
}
