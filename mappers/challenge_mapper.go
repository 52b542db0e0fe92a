// file: mappers/challenge_mapper.go
package mappers

import (
	"time"

	"github.com/MiKhin1115/uitCTF/dto"
	"github.com/MiKhin1115/uitCTF/models"
)

func MapCreateReqToModel(req dto.CreateChallengeReq, startsAt, endsAt time.Time) models.Challenge {
	return models.Challenge{
		EventID:       req.EventID,
		ChallengeName: req.ChallengeName,
		Category:      models.ChallengeCategory(req.Category),
		Author:        req.Author,
		Description:   req.Description,
		Points:        req.Points,
		StartsAt:      startsAt,
		EndsAt:        endsAt,
		// FlagHash 由 Challenge.SetFlag 单独填充，明文不经过映射层
	}
}

func MapModelToItemResp(ch models.Challenge, solvedCount int64) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:            ch.ID,
		ChallengeName: ch.ChallengeName,
		Category:      string(ch.Category),
		Points:        ch.Points,
		StartsAt:      ch.StartsAt.Format("2006-01-02 15:04:05"),
		EndsAt:        ch.EndsAt.Format("2006-01-02 15:04:05"),
		SolvedCount:   solvedCount,
	}
}

func MapModelToDetailResp(ch models.Challenge, atts []models.Attachment) dto.ChallengeDetailResp {
	mini := make([]dto.AttachmentMini, 0, len(atts))
	for _, a := range atts {
		mini = append(mini, dto.AttachmentMini{
			FileID:      a.FileID,
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Size:        a.FileSize,
			SHA256:      a.SHA256,
		})
	}
	return dto.ChallengeDetailResp{
		ID:            ch.ID,
		ChallengeName: ch.ChallengeName,
		Category:      string(ch.Category),
		Author:        ch.Author,
		Description:   ch.Description,
		Points:        ch.Points,
		StartsAt:      ch.StartsAt.Format("2006-01-02 15:04:05"),
		EndsAt:        ch.EndsAt.Format("2006-01-02 15:04:05"),
		Attachments:   mini,
	}
}
