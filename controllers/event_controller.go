// file: controllers/event_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/services"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
)

// GetCurrentEvent 查询当前进行中的赛事基本信息
func GetCurrentEvent(c *gin.Context) {
	event, err := services.CurrentEvent(time.Now())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if event == nil {
		utils.Error(c, http.StatusNotFound, "No active event found")
		return
	}

	utils.Success(c, "success", gin.H{
		"event_id":    event.ID,
		"event_name":  event.EventName,
		"description": event.Description,
		"starts_at":   event.StartsAt.Format("2006-01-02 15:04:05"),
		"ends_at":     event.EndsAt.Format("2006-01-02 15:04:05"),
		"status":      event.StatusAt(time.Now()),
	})
}

// GetCurrentEventStatus 查询赛事状态和剩余时间
func GetCurrentEventStatus(c *gin.Context) {
	event, err := services.CurrentEvent(time.Now())
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if event == nil {
		utils.Error(c, http.StatusNotFound, "No active event found")
		return
	}

	now := time.Now()
	status := event.StatusAt(now)
	remainingTime := "0s"
	if status == models.EventStatusRunning {
		remainingTime = event.EndsAt.Sub(now).Round(time.Second).String()
	}

	utils.Success(c, "success", gin.H{
		"status":         status,
		"now":            now.Format("2006-01-02 15:04:05"),
		"remaining_time": remainingTime,
	})
}

// --- 管理员接口 ---

// CreateEvent 创建赛事，startsAt < endsAt 在边界校验
func CreateEvent(c *gin.Context) {
	var req models.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		utils.Error(c, http.StatusBadRequest, "End time must be after start time.")
		return
	}

	req.ID = 0
	if err := database.DB.Create(&req).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create event")
		return
	}

	utils.Success(c, "Event created successfully", gin.H{"id": req.ID})
}

// UpdateEvent 修改赛事信息
func UpdateEvent(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var event models.Event
	if err := database.DB.First(&event, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Event not found")
		return
	}

	var req models.Event
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		utils.Error(c, http.StatusBadRequest, "End time must be after start time.")
		return
	}

	event.EventName = req.EventName
	event.Description = req.Description
	event.StartsAt = req.StartsAt
	event.EndsAt = req.EndsAt

	if err := database.DB.Save(&event).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update event")
		return
	}

	utils.Success(c, "Event updated successfully", nil)
}

// ListEvents 管理员查询全部赛事
func ListEvents(c *gin.Context) {
	var events []models.Event
	if err := database.DB.Order("starts_at desc").Find(&events).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.Success(c, "success", gin.H{"events": events})
}
