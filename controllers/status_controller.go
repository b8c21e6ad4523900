package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	utils "github.com/phillip/venturelink/utils"
)

// Ping answers liveness checks.
func Ping(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.Respond(c, http.StatusOK, gin.H{"message": "pong"}, "")
	}
}

// Status reports which record store backend is serving requests.
func Status(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := env.Store.Mode()
		mongoConnected := mode == "mongo"

		msg := "Using " + mode + " store"
		if env.Cfg.Backend == "mongo" && !mongoConnected {
			msg = "MongoDB unavailable, using " + mode + " store"
		}
		utils.Respond(c, http.StatusOK, gin.H{
			"mode":           mode,
			"mongoConnected": mongoConnected,
			"message":        msg,
		}, "")
	}
}
