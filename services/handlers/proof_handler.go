package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/shared"
)

type ProofHandler struct {
	proofSvc ProofServiceInterface
}

func NewProofHandler(proofSvc ProofServiceInterface) *ProofHandler {
	return &ProofHandler{
		proofSvc: proofSvc,
	}
}

// @Summary Get proof
// @Description Point lookup of a stored attestation
// @Tags proofs
// @Produce json
// @Param proofId path string true "Proof ID"
// @Success 200 {object} shared.Response{data=model.ZkTLSProof}
// @Router /api/v1/proofs/{proofId} [get]
func (h *ProofHandler) GetProof(c *fiber.Ctx) error {
	proof, err := h.proofSvc.GetProof(c.Params("proofId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", proof)
}

// @Summary Validate proof (Admin)
// @Description Flip a stored proof's verified flag (admin only)
// @Tags proofs
// @Produce json
// @Security Bearer
// @Param proofId path string true "Proof ID"
// @Success 200 {object} shared.Response{data=model.ZkTLSProof}
// @Router /api/v1/proofs/{proofId}/validate [post]
func (h *ProofHandler) ValidateProof(c *fiber.Ctx) error {
	caller := c.Locals(shared.CallerAddress).(string)

	proof, err := h.proofSvc.MarkVerified(c.Params("proofId"), caller)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", proof)
}
