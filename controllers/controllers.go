// Package controllers holds the gin handlers. Each constructor takes the shared *Env
// and returns a gin.HandlerFunc.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	config "github.com/phillip/venturelink/config"
	services "github.com/phillip/venturelink/services"
	store "github.com/phillip/venturelink/store"
	utils "github.com/phillip/venturelink/utils"
)

var errDocumentsDisabled = errors.New("document storage is not configured")

// Env is everything a handler may need.
type Env struct {
	Cfg       *config.Config
	Store     *store.Store
	Catalog   *services.Catalog
	Ledger    *services.Ledger
	Evaluator *services.Evaluator
	Chats     *services.ChatManager
	Users     *services.Users
	Tokens    *utils.Tokens
	Docs      utils.DocumentStore // nil when document storage is off
	Log       *zap.Logger
}

// NewEnv wires the services over st.
func NewEnv(cfg *config.Config, st *store.Store, docs utils.DocumentStore, notifier services.Notifier, log *zap.Logger) *Env {
	return &Env{
		Cfg:       cfg,
		Store:     st,
		Catalog:   services.NewCatalog(st, log),
		Ledger:    services.NewLedger(st, notifier, log),
		Evaluator: services.NewEvaluator(st),
		Chats:     services.NewChatManager(st, log),
		Users:     services.NewUsers(st, log),
		Tokens:    utils.NewTokens(cfg),
		Docs:      docs,
		Log:       log,
	}
}

// serviceError maps a services error onto a response.
func serviceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	utils.Fail(c, status, msg)
}
