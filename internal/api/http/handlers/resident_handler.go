package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/village-portal/internal/api/dto"
	"github.com/spec-kit/village-portal/internal/service"
)

// ResidentServices bundles the services behind the resident endpoints.
type ResidentServices struct {
	Dashboard     *service.DashboardService
	Bids          *service.BidService
	Announcements *service.AnnouncementService
	Requests      *service.RequestService
}

// ResidentHandler exposes resident endpoints.
type ResidentHandler struct {
	svc ResidentServices
}

// NewResidentHandler constructs handler.
func NewResidentHandler(svc ResidentServices) *ResidentHandler {
	return &ResidentHandler{svc: svc}
}

// Dashboard handles GET /resident/dashboard.
func (h *ResidentHandler) Dashboard(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return data(c, h.svc.Dashboard.Resident(user.ID))
}

// ListAnnouncements handles GET /resident/announcements.
func (h *ResidentHandler) ListAnnouncements(c *fiber.Ctx) error {
	return data(c, h.svc.Announcements.List())
}

// ListBids handles GET /resident/bids.
func (h *ResidentHandler) ListBids(c *fiber.Ctx) error {
	return data(c, h.svc.Bids.ForResident())
}

// SubmitProposal handles POST /resident/bids/:id/submissions.
func (h *ResidentHandler) SubmitProposal(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ProposalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sub, err := h.svc.Bids.SubmitProposal(c.UserContext(), user, c.Params("id"), req.Submission())
	if err != nil {
		return err
	}
	return created(c, sub)
}

// ListRequests handles GET /resident/requests.
func (h *ResidentHandler) ListRequests(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return data(c, h.svc.Requests.ForResident(user.ID))
}

// FileRequest handles POST /resident/requests.
func (h *ResidentHandler) FileRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ServiceRequestRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	filed, err := h.svc.Requests.File(c.UserContext(), user, req.ServiceRequest())
	if err != nil {
		return err
	}
	return created(c, filed)
}
