package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/village-portal/internal/api/dto"
	"github.com/spec-kit/village-portal/internal/service"
)

// AdminServices bundles the services behind the admin endpoints.
type AdminServices struct {
	Dashboard     *service.DashboardService
	Residents     *service.ResidentService
	Staff         *service.StaffService
	Bids          *service.BidService
	Announcements *service.AnnouncementService
	Requests      *service.RequestService
}

// AdminHandler exposes administrator endpoints.
type AdminHandler struct {
	svc AdminServices
}

// NewAdminHandler constructs handler.
func NewAdminHandler(svc AdminServices) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return data(c, h.svc.Dashboard.Admin())
}

// ListResidents handles GET /admin/residents.
func (h *AdminHandler) ListResidents(c *fiber.Ctx) error {
	return data(c, h.svc.Residents.List())
}

// SetApproval handles PATCH /admin/residents/:id/approval.
func (h *AdminHandler) SetApproval(c *fiber.Ctx) error {
	var req dto.ApprovalRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	if req.Approved == nil {
		user, err := h.svc.Residents.ToggleApproval(c.UserContext(), c.Params("id"))
		if err != nil {
			return err
		}
		return data(c, user)
	}
	user, err := h.svc.Residents.SetApproval(c.UserContext(), c.Params("id"), *req.Approved)
	if err != nil {
		return err
	}
	return data(c, user)
}

// ListStaff handles GET /admin/staff.
func (h *AdminHandler) ListStaff(c *fiber.Ctx) error {
	return data(c, h.svc.Staff.List())
}

// CreateStaff handles POST /admin/staff.
func (h *AdminHandler) CreateStaff(c *fiber.Ctx) error {
	var req dto.StaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	st, err := h.svc.Staff.Create(c.UserContext(), req.Staff(""))
	if err != nil {
		return err
	}
	return created(c, st)
}

// UpdateStaff handles PUT /admin/staff/:id.
func (h *AdminHandler) UpdateStaff(c *fiber.Ctx) error {
	var req dto.StaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	st, err := h.svc.Staff.Update(c.UserContext(), req.Staff(c.Params("id")))
	if err != nil {
		return err
	}
	return data(c, st)
}

// DeleteStaff handles DELETE /admin/staff/:id.
func (h *AdminHandler) DeleteStaff(c *fiber.Ctx) error {
	if err := h.svc.Staff.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListBids handles GET /admin/bids.
func (h *AdminHandler) ListBids(c *fiber.Ctx) error {
	return data(c, h.svc.Bids.List())
}

// CreateBid handles POST /admin/bids.
func (h *AdminHandler) CreateBid(c *fiber.Ctx) error {
	var req dto.BidRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	bid, err := h.svc.Bids.Create(c.UserContext(), req.Bid(""))
	if err != nil {
		return err
	}
	return created(c, bid)
}

// UpdateBid handles PUT /admin/bids/:id.
func (h *AdminHandler) UpdateBid(c *fiber.Ctx) error {
	var req dto.BidRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	bid, err := h.svc.Bids.Update(c.UserContext(), req.Bid(c.Params("id")))
	if err != nil {
		return err
	}
	return data(c, bid)
}

// DeleteBid handles DELETE /admin/bids/:id.
func (h *AdminHandler) DeleteBid(c *fiber.Ctx) error {
	if err := h.svc.Bids.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// AwardBid handles POST /admin/bids/:id/award.
func (h *AdminHandler) AwardBid(c *fiber.Ctx) error {
	var req dto.AwardRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	bid, err := h.svc.Bids.Award(c.UserContext(), c.Params("id"), req.VendorName)
	if err != nil {
		return err
	}
	return data(c, bid)
}

// ListSubmissions handles GET /admin/bids/:id/submissions.
func (h *AdminHandler) ListSubmissions(c *fiber.Ctx) error {
	subs, err := h.svc.Bids.Submissions(c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, subs)
}

// ListAnnouncements handles GET /admin/announcements.
func (h *AdminHandler) ListAnnouncements(c *fiber.Ctx) error {
	return data(c, h.svc.Announcements.List())
}

// CreateAnnouncement handles POST /admin/announcements.
func (h *AdminHandler) CreateAnnouncement(c *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ann, err := h.svc.Announcements.Publish(c.UserContext(), req.Announcement(""))
	if err != nil {
		return err
	}
	return created(c, ann)
}

// UpdateAnnouncement handles PUT /admin/announcements/:id.
func (h *AdminHandler) UpdateAnnouncement(c *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ann, err := h.svc.Announcements.Update(c.UserContext(), req.Announcement(c.Params("id")))
	if err != nil {
		return err
	}
	return data(c, ann)
}

// DeleteAnnouncement handles DELETE /admin/announcements/:id.
func (h *AdminHandler) DeleteAnnouncement(c *fiber.Ctx) error {
	if err := h.svc.Announcements.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListRequests handles GET /admin/requests.
func (h *AdminHandler) ListRequests(c *fiber.Ctx) error {
	return data(c, h.svc.Requests.List())
}

// UpdateRequest handles PATCH /admin/requests/:id.
func (h *AdminHandler) UpdateRequest(c *fiber.Ctx) error {
	var req dto.RequestStatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.svc.Requests.UpdateStatus(c.UserContext(), c.Params("id"), req.Status, req.AdminNotes)
	if err != nil {
		return err
	}
	return data(c, updated)
}
