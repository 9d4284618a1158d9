package routes

import (
	"Chessio/controllers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures the REST surface. The real protocol lives on
// the socket.io endpoint; these routes are the health check and a
// read-only view over the durable room records.
func SetupRoutes(router *gin.Engine, db *gorm.DB) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/rooms", controllers.ListRooms(db))

	api.GET("/rooms/:name", controllers.GetRoomInfo(db))
}
