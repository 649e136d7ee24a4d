package prompts

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"promptvault-backend/internal/repository"
	"promptvault-backend/internal/services"
	"promptvault-backend/internal/utils"
)

// ListPrompts returns a page of prompts across all owners. The JSON API
// has no session, so there is no owner filtering here.
func ListPrompts(c *gin.Context) {
	skip, limit, ok := parsePagination(c)
	if !ok {
		return
	}

	found, err := services.FindPrompts(skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch prompts"))
		return
	}

	items := make([]PromptResponse, 0, len(found))
	for _, p := range found {
		items = append(items, NewPromptResponse(p))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompts retrieved successfully", items))
}

// CreatePrompt stores a prompt for the user named in the payload. The
// response starts out null.
func CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prompt, err := services.CreatePrompt(req.Prompt, req.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Owner user does not exist"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to create prompt"))
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Prompt created successfully", NewPromptResponse(*prompt)))
}

func GetPrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	prompt, err := services.FindPromptByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to fetch prompt"))
		return
	}
	if prompt == nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Prompt not found"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt retrieved successfully", NewPromptResponse(*prompt)))
}

// UpdatePrompt attaches or replaces the response text; the prompt text
// is left as it was.
func UpdatePrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prompt, err := services.UpdatePrompt(id, repository.UpdatePromptParams{Response: req.Response})
	if err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Prompt not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to update prompt"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt updated successfully", NewPromptResponse(*prompt)))
}

func DeletePrompt(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := services.DeletePrompt(id); err != nil {
		if errors.Is(err, services.ErrPromptNotFound) {
			c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Prompt not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to delete prompt"))
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt ID"))
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (int, int, bool) {
	skipStr := c.DefaultQuery("skip", "0")
	limitStr := c.DefaultQuery("limit", "10")

	skip, err := strconv.Atoi(skipStr)
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid skip parameter"))
		return 0, 0, false
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit parameter"))
		return 0, 0, false
	}

	return skip, limit, true
}
