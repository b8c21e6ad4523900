package controllers

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	middleware "github.com/phillip/venturelink/middleware"
	models "github.com/phillip/venturelink/models"
	services "github.com/phillip/venturelink/services"
	utils "github.com/phillip/venturelink/utils"
)

type ideaForm struct {
	Title       string `form:"title" json:"title" binding:"required,min=5,max=200"`
	Description string `form:"description" json:"description" binding:"required,min=20,max=2000"`
	Category    string `form:"category" json:"category" binding:"required"`
	FundingGoal string `form:"fundingGoal" json:"fundingGoal"`
}

type ideaPatchForm struct {
	Title       *string `form:"title" json:"title" binding:"omitempty,min=5,max=200"`
	Description *string `form:"description" json:"description" binding:"omitempty,min=20,max=2000"`
	Category    *string `form:"category" json:"category"`
	FundingGoal *string `form:"fundingGoal" json:"fundingGoal"`
	Status      *string `form:"status" json:"status" binding:"omitempty,oneof=active funded closed"`
}

// uploadDocument stores the optional multipart "document" file. A nil document and
// nil error mean no file was sent.
func uploadDocument(c *gin.Context, env *Env) (*models.Document, error) {
	header, err := c.FormFile("document")
	if err != nil {
		return nil, nil
	}
	if env.Docs == nil {
		return nil, errDocumentsDisabled
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	url, err := env.Docs.Upload(c.Request.Context(), file, header)
	if err != nil {
		return nil, err
	}
	return &models.Document{Filename: header.Filename, URL: url}, nil
}

// ---------------- CREATE ----------------
func CreateIdea(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		founder := middleware.CurrentUser(c)

		// --- Bind form fields (JSON or multipart) ---
		var input ideaForm
		if err := c.ShouldBind(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}
		if !slices.Contains(models.Categories, input.Category) {
			utils.Fail(c, http.StatusBadRequest, "Invalid category")
			return
		}

		// --- Handle document upload ---
		doc, err := uploadDocument(c, env)
		if err != nil {
			env.Log.Warn("document upload failed", zap.String("user_id", founder.ID), zap.Error(err))
			utils.Fail(c, http.StatusBadRequest, "Document upload failed")
			return
		}

		idea := env.Catalog.AddIdea(c.Request.Context(), founder, services.NewIdea{
			Title:       input.Title,
			Description: input.Description,
			Category:    input.Category,
			FundingGoal: input.FundingGoal,
			Document:    doc,
		})
		utils.Respond(c, http.StatusCreated, idea, "Idea created successfully")
	}
}

// ---------------- LIST ----------------
func ListIdeas(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

		result := env.Catalog.List(c.Request.Context(), services.IdeaQuery{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Page:     page,
			Limit:    limit,
		})

		// --- Generate ETag from latest idea on the page ---
		if latest, ok := latestIdea(result.Data); ok {
			etag := utils.GenerateETag(latest.ID+"|"+c.Request.URL.RawQuery+"|"+strconv.Itoa(result.Total), latest.UpdatedAt)
			if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
				c.Status(http.StatusNotModified)
				return
			}
			c.Header("ETag", etag)
			c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))
		}

		utils.Respond(c, http.StatusOK, result, "")
	}
}

func latestIdea(ideas []models.Idea) (models.Idea, bool) {
	if len(ideas) == 0 {
		return models.Idea{}, false
	}
	latest := ideas[0]
	for _, idea := range ideas[1:] {
		if idea.UpdatedAt.After(latest.UpdatedAt) {
			latest = idea
		}
	}
	return latest, true
}

// ---------------- GET ONE ----------------
func GetIdea(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		idea, ok := env.Catalog.GetIdea(c.Request.Context(), c.Param("id"))
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}

		etag := utils.GenerateETag(idea.ID, idea.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", idea.UpdatedAt.UTC().Format(http.TimeFormat))

		utils.Respond(c, http.StatusOK, idea, "")
	}
}

// ---------------- FOUNDER IDEAS ----------------
func ListFounderIdeas(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ideas := env.Catalog.GetIdeasByFounder(c.Request.Context(), c.GetString("user_id"))
		utils.Respond(c, http.StatusOK, ideas, "")
	}
}

// ---------------- UPDATE ----------------
func UpdateIdea(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		existing, ok := env.Catalog.GetIdea(ctx, id)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}
		if existing.FounderID != c.GetString("user_id") {
			utils.Fail(c, http.StatusForbidden, "You can only update your own ideas")
			return
		}

		var input ideaPatchForm
		if err := c.ShouldBind(&input); err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid request data")
			return
		}
		if input.Category != nil && !slices.Contains(models.Categories, *input.Category) {
			utils.Fail(c, http.StatusBadRequest, "Invalid category")
			return
		}

		doc, err := uploadDocument(c, env)
		if err != nil {
			env.Log.Warn("document upload failed", zap.String("idea_id", id), zap.Error(err))
			utils.Fail(c, http.StatusBadRequest, "Document upload failed")
			return
		}

		patch := models.IdeaPatch{
			Title:       input.Title,
			Description: input.Description,
			Category:    input.Category,
			FundingGoal: input.FundingGoal,
			Status:      input.Status,
			Document:    doc,
		}
		if patch.Empty() {
			utils.Fail(c, http.StatusBadRequest, "No fields to update")
			return
		}

		updated, ok := env.Catalog.UpdateIdea(ctx, id, patch)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}

		// --- Replace old document ---
		if doc != nil && existing.Document != nil && env.Docs != nil {
			if err := env.Docs.Delete(ctx, existing.Document.URL); err != nil {
				env.Log.Warn("old document delete failed", zap.String("idea_id", id), zap.Error(err))
			}
		}

		utils.Respond(c, http.StatusOK, updated, "Idea updated successfully")
	}
}

// ---------------- DELETE ----------------
func DeleteIdea(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		existing, ok := env.Catalog.GetIdea(ctx, id)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}
		if existing.FounderID != c.GetString("user_id") {
			utils.Fail(c, http.StatusForbidden, "You can only delete your own ideas")
			return
		}

		removed, ok := env.Catalog.DeleteIdea(ctx, id)
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}

		if removed.Document != nil && env.Docs != nil {
			if err := env.Docs.Delete(ctx, removed.Document.URL); err != nil {
				env.Log.Warn("document delete failed", zap.String("idea_id", id), zap.Error(err))
			}
		}

		utils.Respond(c, http.StatusOK, nil, "Idea deleted successfully")
	}
}

// ---------------- DOCUMENT ----------------
// IdeaDocument redirects to a readable URL for the idea's supporting document.
func IdeaDocument(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		idea, ok := env.Catalog.GetIdea(c.Request.Context(), c.Param("id"))
		if !ok {
			utils.Fail(c, http.StatusNotFound, "Idea not found")
			return
		}
		if idea.Document == nil {
			utils.Fail(c, http.StatusNotFound, "Idea has no document")
			return
		}
		if env.Docs == nil {
			c.Redirect(http.StatusTemporaryRedirect, idea.Document.URL)
			return
		}

		url, err := env.Docs.ReadURL(c.Request.Context(), idea.Document.URL)
		if err != nil {
			env.Log.Error("document url failed", zap.String("idea_id", idea.ID), zap.Error(err))
			utils.Fail(c, http.StatusInternalServerError, "Failed to fetch document")
			return
		}
		c.Header("Cache-Control", "private, max-age=240")
		c.Redirect(http.StatusTemporaryRedirect, url)
	}
}
