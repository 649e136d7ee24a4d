package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"promptvault-backend/internal/models"
	"promptvault-backend/internal/repository"
	"promptvault-backend/internal/services"
	"promptvault-backend/internal/utils"
)

func currentUser(c *gin.Context) models.User {
	return c.MustGet("user").(models.User)
}

func ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func HandleLogin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error":    "Username and password are required",
			"Username": username,
		})
		return
	}

	user, err := services.AuthenticateUser(username, password)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error":    "Invalid username or password",
			"Username": username,
		})
		return
	}

	token, err := utils.GenerateSessionToken(*user)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error":    "Could not start a session, please try again",
			"Username": username,
		})
		return
	}

	utils.SetSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/profile")
}

// Logout revokes the current session token so the cookie cannot be
// replayed, then clears it.
func Logout(c *gin.Context) {
	if token, err := c.Cookie(utils.SessionCookieName); err == nil && token != "" {
		services.RevokeSession(token, utils.SessionDuration)
	}
	utils.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

func ShowProfile(c *gin.Context) {
	user := currentUser(c)
	c.HTML(http.StatusOK, "profile.html", gin.H{"User": user})
}

func ShowProfileEdit(c *gin.Context) {
	user := currentUser(c)
	c.HTML(http.StatusOK, "profile_edit.html", gin.H{"User": user})
}

func HandleProfileEdit(c *gin.Context) {
	user := currentUser(c)

	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	renderError := func(status int, msg string) {
		c.HTML(status, "profile_edit.html", gin.H{"User": user, "Error": msg})
	}

	if len(username) < 3 || len(username) > 50 {
		renderError(http.StatusBadRequest, "Username must be between 3 and 50 characters")
		return
	}
	if email == "" || !strings.Contains(email, "@") {
		renderError(http.StatusBadRequest, "A valid email address is required")
		return
	}
	if password != "" && len(password) < 8 {
		renderError(http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	params := repository.UpdateUserParams{
		Username: &username,
		Email:    &email,
	}
	if password != "" {
		params.Password = &password
	}

	updated, err := services.UpdateUser(user.ID, params)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			renderError(http.StatusBadRequest, err.Error())
			return
		}
		renderError(http.StatusInternalServerError, "Failed to update profile")
		return
	}

	// The session cookie carries the username, so a rename needs a
	// fresh token or the next request bounces to login.
	if updated.Username != user.Username {
		if token, err := utils.GenerateSessionToken(*updated); err == nil {
			utils.SetSessionCookie(c, token)
		}
	}

	c.Redirect(http.StatusSeeOther, "/profile")
}

// ListPrompts shows only the session user's prompts.
func ListPrompts(c *gin.Context) {
	user := currentUser(c)
	skip, limit := parsePagination(c)

	prompts, err := services.FindPromptsByOwner(user.ID, skip, limit)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "prompts.html", gin.H{"User": user, "Error": "Failed to load prompts"})
		return
	}

	c.HTML(http.StatusOK, "prompts.html", gin.H{"User": user, "Prompts": prompts})
}

func ShowNewPrompt(c *gin.Context) {
	user := currentUser(c)
	c.HTML(http.StatusOK, "prompt_new.html", gin.H{"User": user})
}

func HandleNewPrompt(c *gin.Context) {
	user := currentUser(c)
	text := strings.TrimSpace(c.PostForm("prompt"))

	if len(text) < 5 {
		c.HTML(http.StatusBadRequest, "prompt_new.html", gin.H{
			"User":   user,
			"Error":  "Prompt must be at least 5 characters long",
			"Prompt": text,
		})
		return
	}

	prompt, err := services.CreatePrompt(text, user.ID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "prompt_new.html", gin.H{
			"User":   user,
			"Error":  "Failed to create prompt",
			"Prompt": text,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/prompts/"+strconv.FormatUint(uint64(prompt.ID), 10))
}

func ShowPrompt(c *gin.Context) {
	user := currentUser(c)
	prompt, ok := ownedPrompt(c, user)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "prompt_detail.html", gin.H{"User": user, "Prompt": prompt})
}

func ShowEditPrompt(c *gin.Context) {
	user := currentUser(c)
	prompt, ok := ownedPrompt(c, user)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "prompt_edit.html", gin.H{"User": user, "Prompt": prompt})
}

// HandleEditPrompt only updates the response text; the prompt itself is
// immutable in this flow.
func HandleEditPrompt(c *gin.Context) {
	user := currentUser(c)
	prompt, ok := ownedPrompt(c, user)
	if !ok {
		return
	}

	response := c.PostForm("response")
	_, err := services.UpdatePrompt(prompt.ID, repository.UpdatePromptParams{Response: &response})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "prompt_edit.html", gin.H{
			"User":   user,
			"Prompt": prompt,
			"Error":  "Failed to update prompt",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/prompts/"+strconv.FormatUint(uint64(prompt.ID), 10))
}

func HandleDeletePrompt(c *gin.Context) {
	user := currentUser(c)
	prompt, ok := ownedPrompt(c, user)
	if !ok {
		return
	}

	if err := services.DeletePrompt(prompt.ID); err != nil {
		c.HTML(http.StatusInternalServerError, "prompt_detail.html", gin.H{
			"User":   user,
			"Prompt": prompt,
			"Error":  "Failed to delete prompt",
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/prompts")
}

// ownedPrompt resolves :id and enforces owner-scoped visibility: a
// prompt that exists but belongs to someone else renders the same 404
// page as a missing one.
func ownedPrompt(c *gin.Context, user models.User) (*models.Prompt, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		renderNotFound(c, user)
		return nil, false
	}

	prompt, err := services.FindPromptByID(uint(id))
	if err != nil || prompt == nil || prompt.UserID != user.ID {
		renderNotFound(c, user)
		return nil, false
	}

	return prompt, true
}

func renderNotFound(c *gin.Context, user models.User) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"User": user})
	c.Abort()
}

func parsePagination(c *gin.Context) (int, int) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 10
	}
	return skip, limit
}
