// file: controllers/user_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MiKhin1115/uitCTF/database"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/MiKhin1115/uitCTF/services"
	"github.com/MiKhin1115/uitCTF/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// --- 公开接口 ---

func Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Password string `json:"password" binding:"required,min=8"`
		Email    string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	newUser := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}

	// 不做先查后插：username/email 上的唯一索引裁决并发注册，冲突翻译为 409
	if err := database.DB.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(c, http.StatusConflict, "Username or email already registered")
			return
		}
		utils.Error(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"id":       newUser.ID,
		"username": newUser.Username,
		"role":     newUser.Role,
	})
}

func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.CheckPassword(req.Password) {
		utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if user.Status == models.StatusBanned {
		utils.Error(c, http.StatusForbidden, "Account banned")
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}

// --- 登录用户接口 ---

// GetProfile 返回当前登录用户及其队伍归属
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	team, err := services.TeamForUser(userID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := gin.H{"user": user}
	if team != nil {
		resp["team"] = gin.H{"id": team.ID, "team_name": team.TeamName}
	} else {
		resp["team"] = nil
	}

	utils.Success(c, "success", resp)
}

// --- 管理员接口 ---

func GetUserList(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var total int64
	database.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := database.DB.Order("id asc").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.Success(c, "success", gin.H{
		"total": total,
		"page":  page,
		"limit": limit,
		"users": users,
	})
}

func UpdateUserStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var req struct {
		Status models.UserStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != models.StatusActive && req.Status != models.StatusBanned {
		utils.Error(c, http.StatusBadRequest, "Invalid status")
		return
	}

	result := database.DB.Model(&models.User{}).Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update user status")
		return
	}
	if result.RowsAffected == 0 {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	utils.Success(c, "User status updated successfully", nil)
}
