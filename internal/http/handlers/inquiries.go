// Inspection and support ticket HTTP handlers.
//
//   - POST /inspections              (Idempotency-Key honored)
//   - GET  /inspections
//   - GET  /inspections/{id}
//   - PUT  /inspections/{id}/status
//   - POST /support-tickets          (Idempotency-Key honored)
//   - GET  /support-tickets
//   - GET  /support-tickets/{id}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/services"
)

// RequestInspection godoc
// @ID          requestInspection
// @Summary     Request a viewing
// @Description Stores a pending inspection titled after the listing.
// @Tags        Inquiries
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Client-generated key"
// @Param       body body services.InspectionInput true "Viewing request"
// @Success     201 {object} domain.Inspection
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /inspections [post]
func (h *Handlers) RequestInspection(c *gin.Context) {
	if replay(c, h.inquiries.Inspection) {
		return
	}
	var in services.InspectionInput
	if !bindJSON(c, &in) {
		return
	}
	insp, err := h.inquiries.RequestInspection(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, domain.Inspections, insp.ID)
	ok(c, http.StatusCreated, insp)
}

// ListInspections godoc
// @ID       listInspections
// @Summary  List inspections
// @Tags     Admin
// @Produce  json
// @Success  200 {array} domain.Inspection
// @Router   /inspections [get]
func (h *Handlers) ListInspections(c *gin.Context) {
	out, err := h.inquiries.Inspections(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetInspection godoc
// @ID       getInspection
// @Summary  Get an inspection
// @Tags     Admin
// @Produce  json
// @Param    id path string true "Inspection id"
// @Success  200 {object} domain.Inspection
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /inspections/{id} [get]
func (h *Handlers) GetInspection(c *gin.Context) {
	insp, err := h.inquiries.Inspection(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, insp)
}

// SetInspectionStatus godoc
// @ID       setInspectionStatus
// @Summary  Change an inspection's status
// @Tags     Admin
// @Accept   json
// @Produce  json
// @Param    id   path string        true "Inspection id"
// @Param    body body StatusRequest true "New status"
// @Success  200 {object} domain.Inspection
// @Failure  400 {object} handlers.ErrorResponse
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /inspections/{id}/status [put]
func (h *Handlers) SetInspectionStatus(c *gin.Context) {
	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	insp, err := h.inquiries.SetInspectionStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, insp)
}

// OpenTicket godoc
// @ID       openTicket
// @Summary  Send a support message
// @Tags     Inquiries
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string false "Client-generated key"
// @Param    body body services.TicketInput true "Contact form"
// @Success  201 {object} domain.SupportTicket
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /support-tickets [post]
func (h *Handlers) OpenTicket(c *gin.Context) {
	if replay(c, h.inquiries.Ticket) {
		return
	}
	var in services.TicketInput
	if !bindJSON(c, &in) {
		return
	}
	t, err := h.inquiries.OpenTicket(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, domain.SupportTickets, t.ID)
	ok(c, http.StatusCreated, t)
}

// ListTickets godoc
// @ID       listTickets
// @Summary  List support tickets
// @Tags     Admin
// @Produce  json
// @Success  200 {array} domain.SupportTicket
// @Router   /support-tickets [get]
func (h *Handlers) ListTickets(c *gin.Context) {
	out, err := h.inquiries.Tickets(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

// GetTicket godoc
// @ID       getTicket
// @Summary  Get a support ticket
// @Tags     Admin
// @Produce  json
// @Param    id path string true "Ticket id"
// @Success  200 {object} domain.SupportTicket
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /support-tickets/{id} [get]
func (h *Handlers) GetTicket(c *gin.Context) {
	t, err := h.inquiries.Ticket(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}
