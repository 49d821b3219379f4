// Agent and dashboard HTTP handlers.
//
//   - GET    /stats
//   - GET    /agents
//   - POST   /agents
//   - GET    /agents/{id}
//   - PATCH  /agents/{id}
//   - DELETE /agents/{id}
//   - GET    /agents/{id}/stats
//   - GET    /agents/{id}/listings?kind=
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/state"
)

// QuickStats godoc
// @ID          quickStats
// @Summary     Dashboard statistics
// @Description Totals per collection, average available rent, activity in the last 7 days and application counts per status.
// @Tags        Derived
// @Produce     json
// @Success     200 {object} state.QuickStats
// @Router      /stats [get]
func (h *Handlers) QuickStats(c *gin.Context) {
	var qs state.QuickStats
	err := h.withState(c, func(st *state.State) (err error) {
		qs, err = st.QuickStats(c.Request.Context())
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, qs)
}

// ListAgents godoc
// @ID       listAgents
// @Summary  List agents
// @Tags     Agents
// @Produce  json
// @Success  200 {array} domain.Agent
// @Router   /agents [get]
func (h *Handlers) ListAgents(c *gin.Context) {
	as, err := h.catalog.Agents(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, as)
}

// CreateAgent godoc
// @ID          createAgent
// @Summary     Create an agent
// @Description Phone numbers are normalized to +234 form; WhatsApp defaults to the phone.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       body body domain.Agent true "Agent"
// @Success     201 {object} domain.Agent
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /agents [post]
func (h *Handlers) CreateAgent(c *gin.Context) {
	var in domain.Agent
	if !bindJSON(c, &in) {
		return
	}
	a, err := h.catalog.CreateAgent(c.Request.Context(), in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, a)
}

// GetAgent godoc
// @ID       getAgent
// @Summary  Get an agent
// @Tags     Agents
// @Produce  json
// @Param    id path string true "Agent id" example(agt_1)
// @Success  200 {object} domain.Agent
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /agents/{id} [get]
func (h *Handlers) GetAgent(c *gin.Context) {
	a, err := h.catalog.GetAgent(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// UpdateAgent godoc
// @ID       updateAgent
// @Summary  Patch an agent
// @Tags     Admin
// @Accept   json
// @Produce  json
// @Param    id   path string true "Agent id"
// @Param    body body object true "Fields to change"
// @Success  200 {object} domain.Agent
// @Failure  400 {object} handlers.ErrorResponse
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /agents/{id} [patch]
func (h *Handlers) UpdateAgent(c *gin.Context) {
	var p repo.Patch
	if !bindJSON(c, &p) {
		return
	}
	a, err := h.catalog.UpdateAgent(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// DeleteAgent godoc
// @ID          deleteAgent
// @Summary     Delete an agent immediately
// @Description Their listings keep the agent id.
// @Tags        Admin
// @Param       id path string true "Agent id"
// @Success     204 {string} string "No Content"
// @Router      /agents/{id} [delete]
func (h *Handlers) DeleteAgent(c *gin.Context) {
	if err := h.catalog.DeleteAgent(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// AgentStats godoc
// @ID          agentStats
// @Summary     Agent statistics
// @Description Active listings, applications on the agent's rent listings (by snapshot when the listing is gone) and their average rent.
// @Tags        Derived
// @Produce     json
// @Param       id path string true "Agent id"
// @Success     200 {object} state.AgentStats
// @Router      /agents/{id}/stats [get]
func (h *Handlers) AgentStats(c *gin.Context) {
	var as state.AgentStats
	err := h.withState(c, func(st *state.State) (err error) {
		as, err = st.AgentStats(c.Request.Context(), c.Param("id"))
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, as)
}

// AgentListings godoc
// @ID       agentListings
// @Summary  Listings of one agent
// @Tags     Agents
// @Produce  json
// @Param    id   path  string true  "Agent id"
// @Param    kind query string false "rent or sale" Enums(rent, sale) default(rent)
// @Success  200 {array} domain.Listing
// @Router   /agents/{id}/listings [get]
func (h *Handlers) AgentListings(c *gin.Context) {
	kind, good := kindQuery(c)
	if !good {
		return
	}
	var ls []domain.Listing
	err := h.withState(c, func(st *state.State) (err error) {
		ls, err = st.AgentListings(c.Request.Context(), c.Param("id"), kind)
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ls)
}
