// file: routes/router.go
package routes

import (
	"github.com/MiKhin1115/uitCTF/controllers"
	"github.com/MiKhin1115/uitCTF/middlewares"
	"github.com/MiKhin1115/uitCTF/models"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 用户 ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
		}
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(middlewares.JWTAuthMiddleware())
		{
			usersAuth.GET("/me", controllers.GetProfile)
		}

		// --- 队伍 ---
		// 队伍详情公开可读；可选登录让隐藏队伍对本队成员可见
		apiV1.GET("/teams/:id", middlewares.JWTTryAuthMiddleware(), controllers.GetTeamDetail)
		teamRoutes := apiV1.Group("/teams")
		teamRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			teamRoutes.POST("", controllers.CreateTeam)
			teamRoutes.POST("/join", controllers.JoinTeam)
			teamRoutes.POST("/leave", controllers.LeaveTeam)
			teamRoutes.GET("/my", controllers.GetMyTeam)
			teamRoutes.GET("/:id/solves", controllers.GetTeamSolves)
			teamRoutes.DELETE("/:id", controllers.DisbandTeam)
			teamRoutes.DELETE("/:id/members/:user_id", controllers.KickMember)
		}

		// --- 赛事 ---
		eventRoutes := apiV1.Group("/events")
		{
			eventRoutes.GET("/current", controllers.GetCurrentEvent)
			eventRoutes.GET("/current/status", controllers.GetCurrentEventStatus)
		}

		// --- 题目 ---
		challengeRoutes := apiV1.Group("/challenges")
		challengeRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			challengeRoutes.GET("", controllers.ListChallenges)
			challengeRoutes.GET("/:id", controllers.GetChallengeDetail)
			challengeRoutes.POST("/:id/submit", controllers.SubmitFlag)
		}

		// --- 练习模式 ---
		practiceRoutes := apiV1.Group("/practice")
		practiceRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			practiceRoutes.GET("/challenges", controllers.ListPracticeChallenges)
		}

		// --- 榜单（公开） ---
		apiV1.GET("/leaderboard", controllers.GetLeaderboard)
		apiV1.GET("/scoreboard", controllers.GetScoreboard)
		apiV1.GET("/solve-feed", controllers.GetSolveFeed)

		// --- 附件下载统一网关 ---
		attachmentRoutes := apiV1.Group("/attachments")
		{
			attachmentRoutes.GET("/:file_id/download", middlewares.JWTAuthMiddleware(), controllers.DownloadAttachment)
		}

		// --- 管理员接口 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/users", controllers.GetUserList)
			adminRoutes.PUT("/users/:id/status", controllers.UpdateUserStatus)

			adminRoutes.GET("/teams", controllers.AdminGetTeams)
			adminRoutes.PUT("/teams/:id/status", controllers.AdminUpdateTeamStatus)
			adminRoutes.DELETE("/teams/:id", controllers.AdminDeleteTeam)

			adminRoutes.GET("/events", controllers.ListEvents)
			adminRoutes.POST("/events", controllers.CreateEvent)
			adminRoutes.PUT("/events/:id", controllers.UpdateEvent)

			adminRoutes.GET("/challenges", controllers.AdminListChallenges)
			adminRoutes.GET("/challenges/:id", controllers.AdminGetChallengeDetail)
			adminRoutes.POST("/challenges", controllers.CreateChallenge)
			adminRoutes.PUT("/challenges/:id", controllers.UpdateChallenge)
			adminRoutes.DELETE("/challenges/:id", controllers.DeleteChallenge)
			adminRoutes.POST("/challenges/:id/attachments", controllers.AddAttachment)

			adminRoutes.GET("/flag-logs", controllers.GetFlagLogs)
			adminRoutes.PUT("/flag-logs/:id/suspect", controllers.MarkSuspectSubmission)
		}
	}

	return r
}
