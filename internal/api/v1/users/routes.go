package users

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	users.GET("/", ListUsers)
	users.POST("/", CreateUser)
	users.GET("/:id", GetUser)
	users.PUT("/:id", UpdateUser)
	users.DELETE("/:id", DeleteUser)
}
