package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	utils "github.com/phillip/venturelink/utils"
)

// ---------------- TOGGLE ----------------
func ToggleLike(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IdeaID string `json:"ideaId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		liked, like, err := env.Catalog.ToggleLike(c.Request.Context(), c.GetString("user_id"), input.IdeaID)
		if err != nil {
			serviceError(c, err)
			return
		}
		if !liked {
			utils.Respond(c, http.StatusOK, nil, "Idea unliked successfully")
			return
		}
		utils.Respond(c, http.StatusCreated, like, "Idea liked successfully")
	}
}

// ---------------- LIST FOR IDEA ----------------
func ListIdeaLikes(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, env.Catalog.LikesForIdea(c.Request.Context(), c.Param("ideaId")), "")
	}
}

// ---------------- LIST FOR USER ----------------
func ListUserLikes(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, env.Catalog.LikesForUser(c.Request.Context(), c.GetString("user_id")), "")
	}
}

// ---------------- CHECK ----------------
func CheckLike(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		liked := env.Catalog.HasLiked(c.Request.Context(), c.GetString("user_id"), c.Param("ideaId"))
		utils.Respond(c, http.StatusOK, gin.H{"liked": liked}, "")
	}
}
