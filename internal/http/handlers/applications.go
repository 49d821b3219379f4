// Rental application HTTP handlers.
//
//   - POST /applications            (Idempotency-Key honored)
//   - GET  /applications[?phone=]
//   - GET  /applications/{id}
//   - PUT  /applications/{id}/status
//   - GET  /applications/{id}/print[?format=text]
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/services"
	"github.com/tbourn/warri-apartment-hunt/internal/state"
)

// StatusRequest carries a new workflow status.
type StatusRequest struct {
	Status string `json:"status" binding:"required" example:"Approved"`
}

// SubmitApplication godoc
// @ID          submitApplication
// @Summary     Submit a rental application
// @Description Validates the form, snapshots the listing and stores the application as pending.
// @Description Repeating a request with the same Idempotency-Key returns the first result.
// @Tags        Applications
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Client-generated key"
// @Param       X-Session-ID    header string false "Client session"
// @Param       body            body   services.ApplicationInput true "Application form"
// @Success     201 {object} domain.Application
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /applications [post]
func (h *Handlers) SubmitApplication(c *gin.Context) {
	if replay(c, h.apps.Get) {
		return
	}
	var in services.ApplicationInput
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.apps.Submit(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, domain.Applications, a.ID)
	ok(c, http.StatusCreated, a)
}

// ListApplications godoc
// @ID          listApplications
// @Summary     List applications
// @Description With phone, only that applicant's applications; otherwise all, newest first.
// @Tags        Applications
// @Produce     json
// @Param       phone query string false "Applicant phone as submitted"
// @Success     200 {array} domain.Application
// @Router      /applications [get]
func (h *Handlers) ListApplications(c *gin.Context) {
	if phone := c.Query("phone"); phone != "" {
		var apps []domain.Application
		err := h.withState(c, func(st *state.State) (err error) {
			apps, err = st.UserApplications(c.Request.Context(), phone)
			return err
		})
		if err != nil {
			failErr(c, err)
			return
		}
		ok(c, http.StatusOK, apps)
		return
	}
	apps, err := h.apps.List(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, apps)
}

// GetApplication godoc
// @ID          getApplication
// @Summary     Get an application
// @Description The listing fields come from the live listing, or from the snapshot when it was deleted.
// @Tags        Applications
// @Produce     json
// @Param       id path string true "Application id"
// @Success     200 {object} state.ApplicationView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /applications/{id} [get]
func (h *Handlers) GetApplication(c *gin.Context) {
	a, err := h.apps.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	var v state.ApplicationView
	err = h.withState(c, func(st *state.State) (err error) {
		v, err = st.ViewApplication(c.Request.Context(), *a)
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, v)
}

// SetApplicationStatus godoc
// @ID       setApplicationStatus
// @Summary  Change an application's status
// @Tags     Admin
// @Accept   json
// @Produce  json
// @Param    id   path string        true "Application id"
// @Param    body body StatusRequest true "New status"
// @Success  200 {object} domain.Application
// @Failure  400 {object} handlers.ErrorResponse
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /applications/{id}/status [put]
func (h *Handlers) SetApplicationStatus(c *gin.Context) {
	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.apps.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// PrintApplication godoc
// @ID          printApplication
// @Summary     Printable application summary
// @Description JSON by default; plain text with format=text or Accept: text/plain.
// @Tags        Applications
// @Produce     json
// @Produce     plain
// @Param       id     path  string true  "Application id"
// @Param       format query string false "Output format" Enums(json, text)
// @Success     200 {object} services.Summary
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /applications/{id}/print [get]
func (h *Handlers) PrintApplication(c *gin.Context) {
	sum, err := h.apps.Summarize(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	if wantsText(c) {
		c.String(http.StatusOK, sum.Text())
		return
	}
	ok(c, http.StatusOK, sum)
}

func wantsText(c *gin.Context) bool {
	switch strings.ToLower(c.Query("format")) {
	case "text", "txt":
		return true
	case "json":
		return false
	}
	return strings.HasPrefix(c.GetHeader("Accept"), "text/plain")
}
