package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	middleware "github.com/phillip/venturelink/middleware"
	models "github.com/phillip/venturelink/models"
	utils "github.com/phillip/venturelink/utils"
)

// ---------------- GET OR CREATE ----------------
func OpenChat(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var input struct {
			FounderID  string `json:"founderId" binding:"required"`
			InvestorID string `json:"investorId" binding:"required"`
			IdeaID     string `json:"ideaId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		uid := c.GetString("user_id")
		if uid != input.FounderID && uid != input.InvestorID {
			utils.Fail(c, http.StatusForbidden, "You can only create chats you're part of")
			return
		}

		idea, ok := env.Catalog.GetIdea(ctx, input.IdeaID)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}
		if idea.FounderID != input.FounderID {
			utils.Fail(c, http.StatusBadRequest, "Founder does not own this idea")
			return
		}
		if !env.Evaluator.HasMutualInterest(ctx, input.FounderID, input.InvestorID, input.IdeaID) {
			utils.Fail(c, http.StatusForbidden, "Chat requires mutual interest")
			return
		}

		chat, created := env.Chats.GetOrCreate(ctx, input.FounderID, input.InvestorID, input.IdeaID)
		if created {
			utils.Respond(c, http.StatusCreated, chat, "Chat created successfully")
			return
		}
		utils.Respond(c, http.StatusOK, chat, "")
	}
}

// ---------------- LIST ----------------
func ListChats(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, env.Chats.ForUser(c.Request.Context(), c.GetString("user_id")), "")
	}
}

// partyChat loads the chat named by the :id param and checks the caller belongs to it.
func partyChat(c *gin.Context, env *Env, chatID string) (models.Chat, bool) {
	chat, ok := env.Chats.Get(c.Request.Context(), chatID)
	if !ok {
		utils.Fail(c, http.StatusNotFound, "Chat not found")
		return models.Chat{}, false
	}
	if !chat.HasParticipant(c.GetString("user_id")) {
		utils.Fail(c, http.StatusForbidden, "You don't have access to this chat")
		return models.Chat{}, false
	}
	return chat, true
}

// ---------------- GET ONE ----------------
func GetChat(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		chat, ok := partyChat(c, env, c.Param("id"))
		if !ok {
			return
		}
		utils.Respond(c, http.StatusOK, chat, "")
	}
}

// ---------------- MESSAGES ----------------
func ListMessages(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		chat, ok := partyChat(c, env, c.Param("id"))
		if !ok {
			return
		}
		msgs := chat.Messages
		if msgs == nil {
			msgs = []models.Message{}
		}
		utils.Respond(c, http.StatusOK, msgs, "")
	}
}

// ---------------- SEND ----------------
func SendMessage(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			ChatID  string `json:"chatId" binding:"required"`
			Content string `json:"content" binding:"required,min=1,max=1000"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}

		if _, ok := partyChat(c, env, input.ChatID); !ok {
			return
		}

		user := middleware.CurrentUser(c)
		msg, ok := env.Chats.AppendMessage(c.Request.Context(), input.ChatID, user.ID, user.Name, input.Content)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Chat not found")
			return
		}
		utils.Respond(c, http.StatusCreated, msg, "Message sent successfully")
	}
}
