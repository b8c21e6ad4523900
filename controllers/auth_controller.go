package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	middleware "github.com/phillip/venturelink/middleware"
	models "github.com/phillip/venturelink/models"
	services "github.com/phillip/venturelink/services"
	utils "github.com/phillip/venturelink/utils"
)

// ---------------- REGISTER ----------------
func Register(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required,min=2"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required,min=6"`
			Role     string `json:"role" binding:"required,oneof=founder investor"`
			Company  string `json:"company"`
			Bio      string `json:"bio"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		user, err := env.Users.Register(c.Request.Context(), services.Registration{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
			Role:     input.Role,
			Company:  input.Company,
			Bio:      input.Bio,
		})
		if err != nil {
			serviceError(c, err)
			return
		}

		token, err := env.Tokens.Issue(user)
		if err != nil {
			env.Log.Error("token issue failed", zap.String("user_id", user.ID), zap.Error(err))
			utils.Fail(c, http.StatusInternalServerError, "Registration failed")
			return
		}

		utils.Respond(c, http.StatusCreated,
			models.AuthResponse{User: user.Sanitize(), Token: token}, "User registered successfully")
	}
}

// ---------------- LOGIN ----------------
func Login(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		user, err := env.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			serviceError(c, err)
			return
		}

		token, err := env.Tokens.Issue(user)
		if err != nil {
			env.Log.Error("token issue failed", zap.String("user_id", user.ID), zap.Error(err))
			utils.Fail(c, http.StatusInternalServerError, "Login failed")
			return
		}

		utils.Respond(c, http.StatusOK,
			models.AuthResponse{User: user.Sanitize(), Token: token}, "Login successful")
	}
}

// ---------------- LOGOUT ----------------
// Tokens are stateless; the client drops its copy.
func Logout(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, nil, "Logged out successfully")
	}
}

// ---------------- ME ----------------
func CurrentUser(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, middleware.CurrentUser(c).Sanitize(), "")
	}
}
