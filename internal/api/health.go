// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/eduardoklosowski/madr/internal/platform/constants"
	"github.com/eduardoklosowski/madr/internal/platform/respond"
)

// checkTimeout bounds each dependency probe.
const checkTimeout = 2 * time.Second

// Checker probes one external dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthDependencies holds the injectable dependency checkers.
type HealthDependencies struct {
	// Database backs GET /health.
	Database Checker

	// Extra dependencies reported by GET /ready next to the database.
	Extra []Checker
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// Info is the body of GET /.
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// NewHealthHandlers creates the GET /, /health and /ready handlers.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (info, liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.info, handler.liveness, handler.readiness
}

// info handles GET /.
func (handler *healthHandler) info(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, Info{
		Name:        constants.AppName,
		Description: constants.AppDescription,
		Version:     constants.AppVersion,
	})
}

// liveness handles GET /health. The database is the only hard dependency.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	if handler.dependencies.Database != nil {
		if err := handler.probe(request.Context(), handler.dependencies.Database); err != nil {
			respond.DetailJSON(writer, http.StatusInternalServerError, constants.MessageDatabaseDown)
			return
		}
	}

	respond.OK(writer, respond.Message{Message: constants.MessageHealthOK})
}

// readiness handles GET /ready.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	type checkResult struct {
		Name  string `json:"name"`
		IsOK  bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	checkers := handler.dependencies.Extra
	if handler.dependencies.Database != nil {
		checkers = append([]Checker{handler.dependencies.Database}, checkers...)
	}

	results := make([]checkResult, 0, len(checkers))
	isSystemReady := true

	for _, checker := range checkers {
		result := checkResult{Name: checker.Name(), IsOK: true}
		if err := handler.probe(request.Context(), checker); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
		}
		results = append(results, result)
	}

	responseStatus := "ready"
	httpStatus := http.StatusOK
	if !isSystemReady {
		responseStatus = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respond.JSON(writer, httpStatus, map[string]any{
		constants.FieldStatus: responseStatus,
		constants.FieldChecks: results,
	})
}

func (handler *healthHandler) probe(ctx context.Context, checker Checker) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	err := checker.Check(ctx)
	if err != nil {
		handler.logger.Error("health_check_failed", slog.String("dependency", checker.Name()), slog.Any("error", err))
	}
	return err
}
