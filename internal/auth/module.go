// Package auth wires the authentication bounded context.
package auth

import (
	"github.com/Iamalive23802/Dream-Trade/internal/auth/handler"
	"github.com/Iamalive23802/Dream-Trade/internal/auth/repository"
	"github.com/Iamalive23802/Dream-Trade/internal/auth/service"
	"github.com/Iamalive23802/Dream-Trade/internal/auth/token"
	apphttp "github.com/Iamalive23802/Dream-Trade/internal/http"
	leadsrepo "github.com/Iamalive23802/Dream-Trade/internal/leads/repository"
	"github.com/Iamalive23802/Dream-Trade/platform/config"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the authentication bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule builds the auth module. The leads repository supplies the
// new-assignment count the login response carries.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	counter := leadsrepo.New(pool)
	issuer := token.NewIssuer(cfg)
	svc := service.New(repo, counter, issuer, log)
	return &Module{handler: handler.New(svc)}
}

// Name implements http.Module.
func (m *Module) Name() string { return "auth" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1, ctx.Protected, ctx.AuthRateLimiter)
}
