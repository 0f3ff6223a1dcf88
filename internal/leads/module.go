// Package leads wires the lead management bounded context.
package leads

import (
	"github.com/Iamalive23802/Dream-Trade/internal/events"
	apphttp "github.com/Iamalive23802/Dream-Trade/internal/http"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/handler"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/importer"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/repository"
	"github.com/Iamalive23802/Dream-Trade/internal/leads/service"
	"github.com/Iamalive23802/Dream-Trade/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context.
type Module struct {
	handler *handler.Handler
}

// NewModule builds the leads module. The user directory and roster come from
// the users context; the archiver is optional object storage for raw import
// files.
func NewModule(pool *pgxpool.Pool, dir service.UserDirectory, roster importer.Roster, archive importer.Archiver, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, dir, bus, log)
	imp := importer.New(repo, roster, dir, archive, log)
	return &Module{handler: handler.New(svc, imp)}
}

// Name implements http.Module.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected, ctx.Admin)
}
