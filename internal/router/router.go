package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tripeasy-dev/tripeasy/internal/handlers"
	"github.com/tripeasy-dev/tripeasy/internal/middleware"
	"github.com/tripeasy-dev/tripeasy/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:trip_id", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateAccount)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteAccount)
		}

		// The invite landing page is public: anyone holding the token may
		// view the projection before authenticating.
		api.GET("/invites/:token", handlers.GetInviteByToken)
		api.POST("/invites/:token/accept", middleware.AuthMiddleware(), handlers.AcceptInvite)

		trips := api.Group("/trips", middleware.AuthMiddleware())
		{
			trips.POST("", handlers.CreateTrip)
			trips.GET("", handlers.ListTrips)
			trips.GET("/:trip_id", handlers.GetTrip)
			trips.PATCH("/:trip_id", handlers.UpdateTrip)
			trips.DELETE("/:trip_id", handlers.DeleteTrip)

			trips.GET("/:trip_id/summary", handlers.GetTripSummary)

			trips.GET("/:trip_id/members", handlers.ListMembers)
			trips.PATCH("/:trip_id/members/:member_id", handlers.UpdateMemberRole)
			trips.DELETE("/:trip_id/members/:member_id", handlers.RemoveMember)

			trips.GET("/:trip_id/invites", handlers.ListInvites)
			trips.POST("/:trip_id/invites", handlers.CreateInvite)
		}

		authed := api.Group("", middleware.AuthMiddleware())
		{
			authed.POST("/trip-days", handlers.CreateTripDay)
			authed.PATCH("/trip-days/:day_id", handlers.UpdateTripDay)
			authed.DELETE("/trip-days/:day_id", handlers.DeleteTripDay)

			authed.POST("/activities", handlers.CreateActivity)
			authed.PATCH("/activities/:activity_id", handlers.UpdateActivity)
			authed.DELETE("/activities/:activity_id", handlers.DeleteActivity)

			authed.POST("/lodgings", handlers.CreateLodging)
			authed.PATCH("/lodgings/:lodging_id", handlers.UpdateLodging)
			authed.DELETE("/lodgings/:lodging_id", handlers.DeleteLodging)

			authed.POST("/transport-segments", handlers.CreateSegment)
			authed.PATCH("/transport-segments/:segment_id", handlers.UpdateSegment)
			authed.DELETE("/transport-segments/:segment_id", handlers.DeleteSegment)

			authed.POST("/packing-items", handlers.CreatePackingItem)
			authed.PATCH("/packing-items/:item_id", handlers.UpdatePackingItem)
			authed.DELETE("/packing-items/:item_id", handlers.DeletePackingItem)

			authed.POST("/tasks", handlers.CreateTask)
			authed.PATCH("/tasks/:task_id", handlers.UpdateTask)
			authed.DELETE("/tasks/:task_id", handlers.DeleteTask)

			authed.POST("/expenses", handlers.CreateExpense)
			authed.PATCH("/expenses/:expense_id", handlers.UpdateExpense)
			authed.DELETE("/expenses/:expense_id", handlers.DeleteExpense)

			authed.POST("/notes", handlers.CreateNote)
			authed.PATCH("/notes/:note_id", handlers.UpdateNote)
			authed.DELETE("/notes/:note_id", handlers.DeleteNote)

			authed.POST("/companions", handlers.CreateCompanion)
			authed.PATCH("/companions/:companion_id", handlers.UpdateCompanion)
			authed.DELETE("/companions/:companion_id", handlers.DeleteCompanion)
		}
	}

	return r
}
