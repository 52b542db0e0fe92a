// file: dto/challenge.go
package dto

import "strings"

// ========== 请求 DTO ==========

type CreateChallengeReq struct {
	// 规范字段（snake_case）
	ChallengeName string `json:"challenge_name"`
	EventID       uint32 `json:"event_id"`
	Category      string `json:"category"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Points        uint   `json:"points"`
	Flag          string `json:"flag"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`

	// 仅用于兼容旧客户端（camelCase 别名），所有别名都与上面 tag 不重复
	ChallengeNameCamel string `json:"challengeName"`
	EventIDCamel       uint32 `json:"eventId"`
	StartsAtCamel      string `json:"startsAt"`
	EndsAtCamel        string `json:"endsAt"`
}

// Normalize: 将 camelCase 别名归一化到 snake_case，并做轻量清洗
func (r *CreateChallengeReq) Normalize() {
	if r.ChallengeName == "" && r.ChallengeNameCamel != "" {
		r.ChallengeName = r.ChallengeNameCamel
	}
	if r.EventID == 0 && r.EventIDCamel != 0 {
		r.EventID = r.EventIDCamel
	}
	if r.StartsAt == "" && r.StartsAtCamel != "" {
		r.StartsAt = r.StartsAtCamel
	}
	if r.EndsAt == "" && r.EndsAtCamel != "" {
		r.EndsAt = r.EndsAtCamel
	}

	r.ChallengeName = strings.TrimSpace(r.ChallengeName)
	r.Category = strings.TrimSpace(r.Category)
	r.Author = strings.TrimSpace(r.Author)
	r.Flag = strings.TrimSpace(r.Flag)
}

type UpdateChallengeReq struct {
	State       *string `json:"state"` // visible/hidden
	Description *string `json:"description"`
	Points      *uint   `json:"points"`
	Flag        *string `json:"flag"`
	StartsAt    *string `json:"starts_at"`
	EndsAt      *string `json:"ends_at"`
}

type SubmitFlagReq struct {
	Flag      string `json:"flag"`
	FlagCamel string `json:"Flag"`
}

func (r *SubmitFlagReq) Normalize() {
	if r.Flag == "" && r.FlagCamel != "" {
		r.Flag = r.FlagCamel
	}
	r.Flag = strings.TrimSpace(r.Flag)
}

// ========== 响应 DTO ==========

// SubmitFlagResp 的字段名与前端约定保持 camelCase
type SubmitFlagResp struct {
	Correct       bool `json:"correct"`
	AlreadySolved bool `json:"alreadySolved"`
	Points        uint `json:"points"`
	Practice      bool `json:"practice,omitempty"`
}

type AttachmentMini struct {
	FileID      string `json:"file_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        uint64 `json:"size"`
	SHA256      string `json:"sha256,omitempty"`
}

type ChallengeItemResp struct {
	ID            uint32 `json:"id"`
	ChallengeName string `json:"challenge_name"`
	Category      string `json:"category"`
	Points        uint   `json:"points"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	SolvedCount   int64  `json:"solved_count"`
}

type ChallengeDetailResp struct {
	ID            uint32           `json:"id"`
	ChallengeName string           `json:"challenge_name"`
	Category      string           `json:"category"`
	Author        string           `json:"author,omitempty"`
	Description   string           `json:"description"`
	Points        uint             `json:"points"`
	StartsAt      string           `json:"starts_at"`
	EndsAt        string           `json:"ends_at"`
	Attachments   []AttachmentMini `json:"attachments"`
}

type PracticeChallengeItemResp struct {
	ID            uint32 `json:"id"`
	ChallengeName string `json:"challenge_name"`
	Category      string `json:"category"`
	Points        uint   `json:"points"`
	EndsAt        string `json:"ends_at"`
	Solved        bool   `json:"solved"`
}

type AdminChallengeItemResp struct {
	ID            uint32 `json:"id"`
	ChallengeName string `json:"challenge_name"`
	EventID       uint32 `json:"event_id"`
	Category      string `json:"category"`
	Points        uint   `json:"points"`
	State         string `json:"state"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	UpdatedAt     string `json:"updated_at"`
}
