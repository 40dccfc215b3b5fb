package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vitrine/internal/domain"
	applog "vitrine/internal/log"
	"vitrine/internal/repos"
)

// SessionHandler accepts the three visit-session telemetry signals. All
// three answer 204 on success; the client treats them as fire-and-forget.
type SessionHandler struct {
	Sessions *repos.SessionRepo
}

type heartbeatBody struct {
	SessionID string `json:"session_id"`
	PageURL   string `json:"page_url"`
}

func (h *SessionHandler) Start(c *fiber.Ctx) error {
	var s domain.VisitSession
	if err := c.BodyParser(&s); err != nil || s.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing session_id"})
	}
	if err := h.Sessions.Start(s); err != nil {
		applog.Error(c, "session.start.fail", err, nil)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	applog.Info(c, "session.start", map[string]any{"session_id": s.ID})
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) Heartbeat(c *fiber.Ctx) error {
	var b heartbeatBody
	if err := c.BodyParser(&b); err != nil || b.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing session_id"})
	}
	// Accepted even if the start signal never arrived; telemetry must not
	// bounce on server-side state.
	if err := h.Sessions.Heartbeat(b.SessionID, b.PageURL); err != nil {
		applog.Error(c, "session.heartbeat.fail", err, nil)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) End(c *fiber.Ctx) error {
	var b heartbeatBody
	if err := c.BodyParser(&b); err != nil || b.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing session_id"})
	}
	if err := h.Sessions.End(b.SessionID); err != nil {
		applog.Error(c, "session.end.fail", err, nil)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	applog.Info(c, "session.end", map[string]any{"session_id": b.SessionID})
	return c.SendStatus(fiber.StatusNoContent)
}
