package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

type PetHandler struct {
	petSvc PetServiceInterface
}

func NewPetHandler(petSvc PetServiceInterface) *PetHandler {
	return &PetHandler{
		petSvc: petSvc,
	}
}

// @Summary Update pet status
// @Description Overwrite a pet's vital state, gated by a zkTLS proof
// @Tags pets
// @Accept json
// @Produce json
// @Security Bearer
// @Param petId path string true "Pet ID"
// @Param updateRequest body dto.UpdatePetStatusRequest true "Proposed status and proof"
// @Success 200 {object} shared.Response{data=model.PetStatus}
// @Router /api/v1/pets/{petId}/status [post]
func (h *PetHandler) UpdatePetStatus(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)
	petID := c.Params("petId")

	var req dto.UpdatePetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	status, err := h.petSvc.UpdatePetStatus(petID, caller, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", status)
}

// @Summary Record care activity
// @Description Append a care activity; applies counter deltas when the caller owns the pet
// @Tags pets
// @Accept json
// @Produce json
// @Security Bearer
// @Param petId path string true "Pet ID"
// @Param careRequest body dto.RecordCareActivityRequest true "Activity and proof"
// @Success 201 {object} shared.Response{data=model.PetCareActivity}
// @Router /api/v1/pets/{petId}/activities [post]
func (h *PetHandler) RecordCareActivity(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)
	petID := c.Params("petId")

	var req dto.RecordCareActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	activity, err := h.petSvc.RecordCareActivity(petID, caller, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", activity)
}

// @Summary Process status degradation
// @Description Overwrite an owned pet's state with degraded values
// @Tags pets
// @Accept json
// @Produce json
// @Security Bearer
// @Param petId path string true "Pet ID"
// @Param degradationRequest body dto.ProcessDegradationRequest true "Old and new status plus proof"
// @Success 200 {object} shared.Response{data=model.PetStatus}
// @Router /api/v1/pets/{petId}/degradation [post]
func (h *PetHandler) ProcessStatusDegradation(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)
	petID := c.Params("petId")

	var req dto.ProcessDegradationRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	status, err := h.petSvc.ProcessStatusDegradation(petID, caller, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", status)
}

// @Summary Get pet status
// @Description Point lookup of a pet's vital state
// @Tags pets
// @Produce json
// @Param petId path string true "Pet ID"
// @Success 200 {object} shared.Response{data=model.PetStatus}
// @Router /api/v1/pets/{petId}/status [get]
func (h *PetHandler) GetPetStatus(c *fiber.Ctx) error {
	status, err := h.petSvc.GetPetStatus(c.Params("petId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", status)
}

// @Summary Get care history
// @Description Most-recent care activities for a pet, newest first
// @Tags pets
// @Produce json
// @Param petId path string true "Pet ID"
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} shared.Response{data=[]model.PetCareActivity}
// @Router /api/v1/pets/{petId}/activities [get]
func (h *PetHandler) GetCareHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	activities, err := h.petSvc.GetCareHistory(c.Params("petId"), limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", activities)
}
