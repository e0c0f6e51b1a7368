package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sglre6355/radionet/internal/modules/radionet/application/usecases"
	"github.com/sglre6355/radionet/internal/modules/radionet/domain"
)

// Handler handles HTTP requests for the library.
type Handler struct {
	library usecases.LibraryProvider
}

// NewHandler creates a new library handler.
func NewHandler(library usecases.LibraryProvider) *Handler {
	return &Handler{library: library}
}

// RegisterRoutes registers the library routes with the Fiber app.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	library := app.Group("/library")
	library.Get("/root", handler.GetRoot)
	library.Get("/lookup", handler.Lookup)
	library.Get("/browse", handler.Browse)
	library.Get("/search", handler.Search)
}

// GetRoot returns the library root reference.
func (h *Handler) GetRoot(c *fiber.Ctx) error {
	return c.JSON(h.library.Root())
}

// Lookup resolves the uri query parameter to tracks.
func (h *Handler) Lookup(c *fiber.Ctx) error {
	uri := c.Query("uri")
	if uri == "" {
		return jsonError(c, fiber.StatusBadRequest, "missing uri parameter")
	}

	tracks, ok, err := h.library.Lookup(c.UserContext(), uri)
	switch {
	case errors.Is(err, domain.ErrStationNotFound):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidStationID):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		slog.Warn("lookup failed", "uri", uri, "error", err)
		return jsonError(c, fiber.StatusBadGateway, "radio.net lookup failed")
	case !ok:
		return jsonError(c, fiber.StatusNotFound, domain.ErrForeignScheme.Error())
	}

	return c.JSON(fiber.Map{"tracks": tracks})
}

// Browse lists the references below the uri query parameter, the root by default.
func (h *Handler) Browse(c *fiber.Ctx) error {
	uri := c.Query("uri", h.library.Root().URI)

	refs, err := h.library.Browse(c.UserContext(), uri)
	if err != nil {
		slog.Warn("browse failed", "uri", uri, "error", err)
		return jsonError(c, fiber.StatusBadGateway, "radio.net browse failed")
	}

	return c.JSON(fiber.Map{"refs": refs})
}

// Search searches stations with the repeated any query parameter.
func (h *Handler) Search(c *fiber.Ctx) error {
	var terms []string
	for _, value := range c.Context().QueryArgs().PeekMulti(domain.QueryFieldAny) {
		terms = append(terms, string(value))
	}

	query := usecases.Query{}
	if len(terms) > 0 {
		query[domain.QueryFieldAny] = terms
	}

	result, err := h.library.Search(c.UserContext(), query, nil, false)
	if err != nil {
		slog.Warn("search failed", "terms", terms, "error", err)
		return jsonError(c, fiber.StatusBadGateway, "radio.net search failed")
	}

	return c.JSON(result)
}

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
