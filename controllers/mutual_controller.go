package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	utils "github.com/phillip/venturelink/utils"
)

// ---------------- CHECK ----------------
func CheckMutual(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q struct {
			FounderID  string `form:"founderId" binding:"required"`
			InvestorID string `form:"investorId" binding:"required"`
			IdeaID     string `form:"ideaId" binding:"required"`
		}
		if err := c.ShouldBindQuery(&q); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		mutual := env.Evaluator.HasMutualInterest(c.Request.Context(), q.FounderID, q.InvestorID, q.IdeaID)
		utils.Respond(c, http.StatusOK, gin.H{"mutual": mutual}, "")
	}
}

// ---------------- MATCHES ----------------
// ListMatches returns every mutual pair the caller takes part in.
func ListMatches(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, env.Evaluator.MutualFor(c.Request.Context(), c.GetString("user_id")), "")
	}
}
