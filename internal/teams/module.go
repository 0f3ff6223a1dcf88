// Package teams wires the teams bounded context.
package teams

import (
	apphttp "github.com/Iamalive23802/Dream-Trade/internal/http"
	"github.com/Iamalive23802/Dream-Trade/internal/teams/handler"
	"github.com/Iamalive23802/Dream-Trade/internal/teams/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the teams bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule builds the teams module.
func NewModule(pool *pgxpool.Pool) *Module {
	return &Module{handler: handler.New(repository.New(pool))}
}

// Name implements http.Module.
func (m *Module) Name() string { return "teams" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected, ctx.Admin)
}
