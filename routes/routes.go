package routes

import (
	"Mafia/controllers"
	utils "Mafia/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, rooms *controllers.RoomController, stats *controllers.StatsController, games *controllers.GamesController) {
	// utils global
	router.Use(utils.Logger(), utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	// Main menu buttons
	api.GET("/find", rooms.FindRoom)
	api.GET("/new", rooms.NewRoom)

	api.GET("/id/:roomID", rooms.GetRoom)

	api.GET("/stats", stats.GetStats)

	history := api.Group("/games")
	{
		history.GET("", games.ListGames)
		history.GET("/:roomID", games.RoomGames)
	}
}
