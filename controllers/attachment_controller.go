// file: controllers/attachment_controller.go
package controllers

import (
	"net/http"
	"strconv"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/dto"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
)

// AddAttachment —— 登记附件元数据；文件本体由外部存储托管，
// 这里只生成 file_id 引用并落库
func AddAttachment(c *gin.Context) {
	challengeID, _ := strconv.Atoi(c.Param("id"))

	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var challenge models.Challenge
	if err := database.DB.First(&challenge, challengeID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	var req dto.AddAttachmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	newAttachment := models.Attachment{
		ChallengeID: uint32(challengeID),
		FileID:      utils.GenerateFileID(),
		Storage:     models.StorageURL,
		URL:         req.URL,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    req.Size,
		SHA256:      req.SHA256,
		Status:      models.AttachmentStatusActive,
		SortOrder:   req.SortOrder,
		CreatedBy:   userID,
	}
	if req.URL == "" {
		// 对象存储引用：file_id 即外部存储键
		newAttachment.Storage = models.StorageObject
	}

	if err := database.DB.Create(&newAttachment).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create attachment")
		return
	}

	utils.Success(c, "success", gin.H{
		"attachment_id": newAttachment.ID,
		"file_id":       newAttachment.FileID,
		"status":        newAttachment.Status,
	})
}

// DownloadAttachment —— 统一网关下载：外链 302，对象存储返回引用元数据
func DownloadAttachment(c *gin.Context) {
	fileID := c.Param("file_id")

	var attachment models.Attachment
	if err := database.DB.Where("file_id = ?", fileID).First(&attachment).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Attachment not found")
		return
	}
	if attachment.Status != models.AttachmentStatusActive {
		utils.Error(c, http.StatusNotFound, "Attachment not found")
		return
	}

	if attachment.Storage == models.StorageURL {
		c.Redirect(http.StatusFound, attachment.URL)
		return
	}

	// 对象存储由外部协作方负责下发，这里只返回引用
	utils.Success(c, "success", gin.H{
		"file_id":      attachment.FileID,
		"file_name":    attachment.FileName,
		"content_type": attachment.ContentType,
		"size":         attachment.FileSize,
		"sha256":       attachment.SHA256,
	})
}
