// Package server exposes the aggregated component list and shared-build
// resolution over HTTP. The build-in-progress itself lives client-side; this
// surface only serves data and recomputes summaries for shared builds.
package server

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"

	"pcbanai/core/internal/build"
	"pcbanai/core/internal/catalog"
	"pcbanai/core/internal/domain"
)

type Server struct {
	app      *fiber.App
	source   catalog.Source
	cacheAge int
}

// New wires the HTTP routes over a component source. cacheAge is the
// Cache-Control max-age (seconds) advertised on component responses.
func New(source catalog.Source, cacheAge int) *Server {
	s := &Server{
		app:      fiber.New(),
		source:   source,
		cacheAge: cacheAge,
	}

	s.app.Get("/healthz", s.handleHealth)
	s.app.Get("/components", s.handleComponents)
	s.app.Get("/build", s.handleSharedBuild)

	return s
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	log.Infof("HTTP surface listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleHealth(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// handleComponents serves the normalized component list, optionally filtered
// by canonical category. An unknown category yields an empty list, matching
// the filter-expansion semantics; only a fully unreachable store is a 500.
func (s *Server) handleComponents(c fiber.Ctx) error {
	filter := domain.Category(c.Query("category"))

	components, err := s.source.Components(c.Context(), filter)
	if err != nil {
		log.Errorf("Failed to aggregate components: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load components",
		})
	}

	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("public, max-age=%d", s.cacheAge))
	return c.Status(fiber.StatusOK).JSON(components)
}

// handleSharedBuild reconstructs a shared build from its code, resolves the
// component ids against the current listings and returns the recomputed
// summary. Ids that no longer resolve are reported, not failed on.
func (s *Server) handleSharedBuild(c fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing build code",
		})
	}

	ids, err := build.DecodeShareCode(code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed build code",
		})
	}

	components, err := s.source.Components(c.Context(), "")
	if err != nil {
		log.Errorf("Failed to aggregate components: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load components",
		})
	}

	byID := make(map[string]domain.Component, len(components))
	for _, component := range components {
		byID[component.ID] = component
	}

	selection := build.NewSelection()
	var missing []string
	for _, slotIDs := range ids {
		for _, id := range slotIDs {
			component, ok := byID[id]
			if !ok {
				missing = append(missing, id)
				continue
			}
			selection.Select(component)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"summary": build.Summarize(selection),
		"missing": missing,
	})
}
