package controllers

import (
	"net/http"

	models "Chessio/models/postgres"
	"Chessio/services/game"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Health check
// @Description Returns pong if the server is up
// @Tags health
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Lists active rooms
// @Description Returns the durable records of every room that is not over
// @Tags rooms
// @Produce json
// @Success 200 {array} postgres.Room
// @Failure 500 {object} object{error=string}
// @Router /rooms [get]
func ListRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rooms []models.Room
		if err := db.Where("is_over = ?", false).Find(&rooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing rooms"})
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

// @Summary Gives info of a room
// @Description Given a room name, returns its durable record with players
// @Tags rooms
// @Produce json
// @Param name path string true "Name of the room wanted"
// @Success 200 {object} postgres.Room
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /rooms/{name} [get]
func GetRoomInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := game.NormalizeName(c.Param("name"))

		var room models.Room
		result := db.Preload("Players").Where("name = ?", name).First(&room)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading room"})
			return
		}

		c.JSON(http.StatusOK, room)
	}
}
