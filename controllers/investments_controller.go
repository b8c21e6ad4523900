package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	middleware "github.com/phillip/venturelink/middleware"
	models "github.com/phillip/venturelink/models"
	services "github.com/phillip/venturelink/services"
	utils "github.com/phillip/venturelink/utils"
)

// ---------------- EXPRESS INTEREST ----------------
func ExpressInterest(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IdeaID string `json:"ideaId" binding:"required"`
			Amount string `json:"amount" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		inv, err := env.Ledger.ExpressInterest(c.Request.Context(), middleware.CurrentUser(c), input.IdeaID, input.Amount)
		if err != nil {
			serviceError(c, err)
			return
		}
		utils.Respond(c, http.StatusCreated, inv, "Interest expressed successfully")
	}
}

// ---------------- LIST FOR IDEA ----------------
// The founder owning the idea sees every record; anyone else sees only their own.
func ListIdeaInvestments(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		ideaID := c.Param("ideaId")
		uid := c.GetString("user_id")

		idea, ok := env.Catalog.GetIdea(ctx, ideaID)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}

		invs := env.Ledger.ForIdea(ctx, ideaID)
		if idea.FounderID != uid {
			own := []models.Investment{}
			for _, inv := range invs {
				if inv.InvestorID == uid {
					own = append(own, inv)
				}
			}
			invs = own
		}
		utils.Respond(c, http.StatusOK, invs, "")
	}
}

// ---------------- LIST FOR INVESTOR ----------------
func ListUserInvestments(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, env.Ledger.ForInvestor(c.Request.Context(), c.GetString("user_id")), "")
	}
}

// ---------------- LIST FOR FOUNDER ----------------
func ListFounderInvestments(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, env.Ledger.ForFounder(c.Request.Context(), c.GetString("user_id")), "")
	}
}

// ---------------- UPDATE ----------------
func UpdateInvestment(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status *string `json:"status" binding:"omitempty,oneof=liked_back declined"`
			Amount *string `json:"amount"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		inv, err := env.Ledger.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"),
			services.InterestUpdate{Status: input.Status, Amount: input.Amount})
		if err != nil {
			serviceError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, inv, "Investment updated successfully")
	}
}

// ---------------- LIKE BACK ----------------
func LikeBack(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var input struct {
			InvestorID string `json:"investorId" binding:"required"`
			IdeaID     string `json:"ideaId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		idea, ok := env.Catalog.GetIdea(ctx, input.IdeaID)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}
		if idea.FounderID != c.GetString("user_id") {
			utils.Fail(c, http.StatusForbidden, "Only the founder of this idea can like back")
			return
		}

		inv, ok := env.Ledger.LikeBack(ctx, input.InvestorID, input.IdeaID)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Investment not found")
			return
		}
		utils.Respond(c, http.StatusOK, inv, "Investor liked back")
	}
}

// ---------------- WITHDRAW ----------------
func WithdrawInvestment(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := env.Ledger.Withdraw(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
			serviceError(c, err)
			return
		}
		utils.Respond(c, http.StatusOK, nil, "Investment withdrawn successfully")
	}
}
