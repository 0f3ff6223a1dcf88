// Package users wires the user management bounded context.
package users

import (
	apphttp "github.com/Iamalive23802/Dream-Trade/internal/http"
	"github.com/Iamalive23802/Dream-Trade/internal/users/handler"
	"github.com/Iamalive23802/Dream-Trade/internal/users/repository"
	"github.com/Iamalive23802/Dream-Trade/internal/users/service"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the users bounded context.
type Module struct {
	handler   *handler.Handler
	directory *service.Directory
}

// NewModule builds the users module.
func NewModule(pool *pgxpool.Pool, mailer service.CredentialMailer, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, mailer, log)
	return &Module{
		handler:   handler.New(svc),
		directory: service.NewDirectory(repo),
	}
}

// Directory exposes the user lookup adapter the leads module consumes for
// assignment resolution and bulk import rosters.
func (m *Module) Directory() *service.Directory {
	return m.directory
}

// Name implements http.Module.
func (m *Module) Name() string { return "users" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Admin)
}
