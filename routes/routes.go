package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	controllers "github.com/phillip/venturelink/controllers"
	middleware "github.com/phillip/venturelink/middleware"
	models "github.com/phillip/venturelink/models"
)

// NewRouter builds the engine with logging, recovery and CORS, then mounts the API.
func NewRouter(env *controllers.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(env.Log), middleware.Recovery(env.Log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "If-None-Match")
	corsCfg.ExposeHeaders = []string{"ETag", "Last-Modified"}
	corsCfg.MaxAge = 12 * time.Hour
	if len(env.Cfg.CORSOrigins) == 0 || (len(env.Cfg.CORSOrigins) == 1 && env.Cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = env.Cfg.CORSOrigins
	}
	r.Use(cors.New(corsCfg))

	SetupRoutes(r, env)
	return r
}

func SetupRoutes(r *gin.Engine, env *controllers.Env) {
	api := r.Group("/api")

	// public
	api.GET("/ping", controllers.Ping(env))
	api.GET("/status", controllers.Status(env))
	api.POST("/auth/register", controllers.Register(env))
	api.POST("/auth/login", controllers.Login(env))
	api.GET("/ideas", controllers.ListIdeas(env))
	api.GET("/ideas/:id", controllers.GetIdea(env))
	api.GET("/ideas/:id/document", controllers.IdeaDocument(env))

	// protected
	auth := middleware.AuthMiddleware(env.Tokens, env.Users)
	founderOnly := func(msg string) gin.HandlerFunc { return middleware.RequireRole(models.RoleFounder, msg) }
	investorOnly := func(msg string) gin.HandlerFunc { return middleware.RequireRole(models.RoleInvestor, msg) }

	authed := api.Group("")
	authed.Use(auth)
	{
		authed.POST("/auth/logout", controllers.Logout(env))
		authed.GET("/auth/me", controllers.CurrentUser(env))
	}

	ideas := api.Group("/ideas")
	ideas.Use(auth)
	{
		ideas.POST("", founderOnly("Only founders can create ideas"), controllers.CreateIdea(env))
		ideas.PUT("/:id", controllers.UpdateIdea(env))
		ideas.DELETE("/:id", controllers.DeleteIdea(env))
	}
	api.GET("/founder/ideas", auth, founderOnly("Only founders can access this endpoint"), controllers.ListFounderIdeas(env))

	likes := api.Group("/likes")
	likes.Use(auth)
	{
		likes.POST("", investorOnly("Only investors can like ideas"), controllers.ToggleLike(env))
		likes.GET("/idea/:ideaId", controllers.ListIdeaLikes(env))
		likes.GET("/user", investorOnly("Only investors can access this endpoint"), controllers.ListUserLikes(env))
		likes.GET("/check/:ideaId", controllers.CheckLike(env))
	}

	investments := api.Group("/investments")
	investments.Use(auth)
	{
		investments.POST("", investorOnly("Only investors can express interest"), controllers.ExpressInterest(env))
		investments.GET("/idea/:ideaId", controllers.ListIdeaInvestments(env))
		investments.GET("/user", investorOnly("Only investors can access this endpoint"), controllers.ListUserInvestments(env))
		investments.GET("/founder", founderOnly("Only founders can access this endpoint"), controllers.ListFounderInvestments(env))
		investments.POST("/like-back", founderOnly("Only founders can like back investors"), controllers.LikeBack(env))
		investments.PUT("/:id", controllers.UpdateInvestment(env))
		investments.DELETE("/:id", investorOnly("Only investors can withdraw interest"), controllers.WithdrawInvestment(env))
	}

	api.GET("/mutual", auth, controllers.CheckMutual(env))
	api.GET("/matches", auth, controllers.ListMatches(env))

	chats := api.Group("/chats")
	chats.Use(auth)
	{
		chats.POST("", controllers.OpenChat(env))
		chats.GET("", controllers.ListChats(env))
		chats.POST("/message", controllers.SendMessage(env))
		chats.GET("/:id", controllers.GetChat(env))
		chats.GET("/:id/messages", controllers.ListMessages(env))
	}
}
