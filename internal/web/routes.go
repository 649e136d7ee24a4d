package web

import (
	"github.com/gin-gonic/gin"

	"promptvault-backend/internal/middleware"
)

func RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ShowLogin)
	router.POST("/login", HandleLogin)
	router.GET("/logout", Logout)

	authed := router.Group("/")
	authed.Use(middleware.SessionAuth())
	{
		authed.GET("/profile", ShowProfile)
		authed.GET("/profile/edit", ShowProfileEdit)
		authed.POST("/profile/edit", HandleProfileEdit)

		authed.GET("/prompts", ListPrompts)
		authed.GET("/prompts/new", ShowNewPrompt)
		authed.POST("/prompts/new", HandleNewPrompt)
		authed.GET("/prompts/:id", ShowPrompt)
		authed.GET("/prompts/:id/edit", ShowEditPrompt)
		authed.POST("/prompts/:id/edit", HandleEditPrompt)
		authed.POST("/prompts/:id/delete", HandleDeletePrompt)
	}
}
