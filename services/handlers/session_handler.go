package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

type SessionHandler struct {
	sessionSvc SessionServiceInterface
}

func NewSessionHandler(sessionSvc SessionServiceInterface) *SessionHandler {
	return &SessionHandler{
		sessionSvc: sessionSvc,
	}
}

// @Summary Record game session
// @Description Store or replace the full session state, gated by a zkTLS proof
// @Tags sessions
// @Accept json
// @Produce json
// @Security Bearer
// @Param sessionRequest body dto.RecordSessionRequest true "Session and proof"
// @Success 201 {object} shared.Response{data=model.GameSession}
// @Router /api/v1/sessions [post]
func (h *SessionHandler) RecordGameSession(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)

	var req dto.RecordSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	session, err := h.sessionSvc.RecordGameSession(caller, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", session)
}

// @Summary Get session
// @Description Point lookup of a game session
// @Tags sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} shared.Response{data=model.GameSession}
// @Router /api/v1/sessions/{sessionId} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessionSvc.GetSession(c.Params("sessionId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", session)
}

// @Summary Get sessions by player
// @Description Most recently written sessions for a player
// @Tags sessions
// @Produce json
// @Param address path string true "Player address"
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} shared.Response{data=[]model.GameSession}
// @Router /api/v1/players/{address}/sessions [get]
func (h *SessionHandler) GetSessionsByPlayer(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	sessions, err := h.sessionSvc.GetSessionsByPlayer(c.Params("address"), limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", sessions)
}
