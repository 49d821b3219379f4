// Session HTTP handlers.
//
// These endpoints drive one client's view state: the filter set, sort mode
// and page behind the listing views, the image gallery, and the two-step
// delete confirmation. The session is named by the X-Session-ID header.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/listing"
	"github.com/tbourn/warri-apartment-hunt/internal/state"
	"github.com/tbourn/warri-apartment-hunt/internal/uistate"
)

//
// DTOs
//

// SessionResponse summarizes a session's view state.
type SessionResponse struct {
	Filters  listing.Filters   `json:"filters"`
	Sort     listing.SortMode  `json:"sort"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Cache    state.CacheStats  `json:"cache"`
	Gallery  state.GalleryView `json:"gallery"`
	Modal    string            `json:"modal,omitempty"`
	Pending  *uistate.Intent   `json:"pendingDelete,omitempty"`
}

// SortRequest selects a sort mode.
type SortRequest struct {
	Sort listing.SortMode `json:"sort" binding:"required" example:"price-asc"`
}

// PageRequest selects a page number.
type PageRequest struct {
	Page int `json:"page" example:"2"`
}

// GalleryRequest opens the gallery on a listing's images or on an explicit
// image sequence.
type GalleryRequest struct {
	Kind   string   `json:"kind,omitempty" example:"rent"`
	ID     string   `json:"id,omitempty" example:"apt_1"`
	Images []string `json:"images,omitempty"`
}

// IndexRequest jumps the gallery to an image.
type IndexRequest struct {
	Index int `json:"index" example:"0"`
}

// DeleteRequest asks for confirmation before deleting a record.
type DeleteRequest struct {
	Target string `json:"target" binding:"required" example:"rent"`
	ID     string `json:"id" binding:"required" example:"apt_1"`
}

// DeleteResponse carries the pending intent and its confirmation prompt.
type DeleteResponse struct {
	Intent  uistate.Intent `json:"intent"`
	Message string         `json:"message"`
}

//
// Handlers
//

// GetSession godoc
// @ID       getSession
// @Summary  Session view state
// @Tags     Session
// @Produce  json
// @Param    X-Session-ID header string false "Client session"
// @Success  200 {object} handlers.SessionResponse
// @Router   /session [get]
func (h *Handlers) GetSession(c *gin.Context) {
	h.respondState(c, http.StatusOK, func(*state.State) error { return nil })
}

// UpdateFilters godoc
// @ID          updateFilters
// @Summary     Merge filter fields
// @Description Only the fields present change. The page resets to 1.
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       X-Session-ID header string              false "Client session"
// @Param       body         body   listing.FilterPatch true  "Filter fields"
// @Success     200 {object} handlers.SessionResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /session/filters [patch]
func (h *Handlers) UpdateFilters(c *gin.Context) {
	var p listing.FilterPatch
	if !bindJSON(c, &p) {
		return
	}
	if (p.MinBudget != nil && *p.MinBudget < 0) || (p.MaxBudget != nil && *p.MaxBudget < 0) {
		failField(c, http.StatusBadRequest, ErrCodeValidation, "budget", "budget cannot be negative")
		return
	}
	h.respondState(c, http.StatusOK, func(st *state.State) error {
		st.UpdateSearchFilters(p)
		return nil
	})
}

// ClearFilters godoc
// @ID       clearFilters
// @Summary  Restore default filters (available only)
// @Tags     Session
// @Produce  json
// @Param    X-Session-ID header string false "Client session"
// @Success  200 {object} handlers.SessionResponse
// @Router   /session/filters [delete]
func (h *Handlers) ClearFilters(c *gin.Context) {
	h.respondState(c, http.StatusOK, func(st *state.State) error {
		st.ClearSearchFilters()
		return nil
	})
}

// UpdateSort godoc
// @ID          updateSort
// @Summary     Change sort mode
// @Description The page is kept.
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       body body handlers.SortRequest true "Sort mode"
// @Success     200 {object} handlers.SessionResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /session/sort [put]
func (h *Handlers) UpdateSort(c *gin.Context) {
	var req SortRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Sort.Known() {
		failField(c, http.StatusBadRequest, ErrCodeValidation, "sort", "unknown sort mode")
		return
	}
	h.respondState(c, http.StatusOK, func(st *state.State) error {
		st.UpdateSort(req.Sort)
		return nil
	})
}

// SetPage godoc
// @ID          setPage
// @Summary     Jump to a page
// @Description Values below 1 are treated as 1.
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       body body handlers.PageRequest true "Page"
// @Success     200 {object} handlers.SessionResponse
// @Router      /session/page [put]
func (h *Handlers) SetPage(c *gin.Context) {
	var req PageRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respondState(c, http.StatusOK, func(st *state.State) error {
		st.SetPage(req.Page)
		return nil
	})
}

// NextPage godoc
// @ID          nextPage
// @Summary     Advance one page
// @Description No-op on the last page of the kind's filtered view.
// @Tags        Session
// @Produce     json
// @Param       kind query string false "rent or sale" Enums(rent, sale) default(rent)
// @Success     200 {object} listing.Page
// @Router      /session/page/next [post]
func (h *Handlers) NextPage(c *gin.Context) {
	h.turnPage(c, func(st *state.State, kind domain.Kind) error {
		return st.NextPage(c.Request.Context(), kind)
	})
}

// PrevPage godoc
// @ID       prevPage
// @Summary  Go back one page (never below 1)
// @Tags     Session
// @Produce  json
// @Param    kind query string false "rent or sale" Enums(rent, sale) default(rent)
// @Success  200 {object} listing.Page
// @Router   /session/page/prev [post]
func (h *Handlers) PrevPage(c *gin.Context) {
	h.turnPage(c, func(st *state.State, _ domain.Kind) error {
		st.PrevPage()
		return nil
	})
}

func (h *Handlers) turnPage(c *gin.Context, move func(*state.State, domain.Kind) error) {
	kind, good := kindQuery(c)
	if !good {
		return
	}
	var page listing.Page
	err := h.withState(c, func(st *state.State) (err error) {
		if err = move(st, kind); err != nil {
			return err
		}
		page, err = st.PaginatedListings(c.Request.Context(), kind)
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

// GetGallery godoc
// @ID       getGallery
// @Summary  Gallery state
// @Tags     Gallery
// @Produce  json
// @Success  200 {object} state.GalleryView
// @Router   /session/gallery [get]
func (h *Handlers) GetGallery(c *gin.Context) {
	h.gallery(c, func(*state.State) error { return nil })
}

// OpenGallery godoc
// @ID          openGallery
// @Summary     Load the gallery
// @Description With kind and id, opens on the listing's lead image followed by its other images. Otherwise uses images. The index resets to 0.
// @Tags        Gallery
// @Accept      json
// @Produce     json
// @Param       body body handlers.GalleryRequest true "Gallery source"
// @Success     200 {object} state.GalleryView
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /session/gallery [put]
func (h *Handlers) OpenGallery(c *gin.Context) {
	var req GalleryRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID == "" {
		h.gallery(c, func(st *state.State) error {
			st.SetGalleryImages(req.Images)
			return nil
		})
		return
	}
	kind := domain.KindRent
	if req.Kind != "" {
		k, err := domain.ParseKind(req.Kind)
		if err != nil {
			failField(c, http.StatusBadRequest, ErrCodeUnknownKind, "kind", "kind must be rent or sale")
			return
		}
		kind = k
	}
	h.gallery(c, func(st *state.State) error {
		_, err := st.OpenGallery(c.Request.Context(), kind, req.ID)
		return err
	})
}

// NextImage godoc
// @ID       nextImage
// @Summary  Next image (wraps to the first)
// @Tags     Gallery
// @Produce  json
// @Success  200 {object} state.GalleryView
// @Router   /session/gallery/next [post]
func (h *Handlers) NextImage(c *gin.Context) {
	h.gallery(c, func(st *state.State) error {
		st.NextImage()
		return nil
	})
}

// PrevImage godoc
// @ID       prevImage
// @Summary  Previous image (wraps to the last)
// @Tags     Gallery
// @Produce  json
// @Success  200 {object} state.GalleryView
// @Router   /session/gallery/prev [post]
func (h *Handlers) PrevImage(c *gin.Context) {
	h.gallery(c, func(st *state.State) error {
		st.PrevImage()
		return nil
	})
}

// SetImageIndex godoc
// @ID          setImageIndex
// @Summary     Jump to an image
// @Description Out-of-range indexes leave the gallery unchanged.
// @Tags        Gallery
// @Accept      json
// @Produce     json
// @Param       body body handlers.IndexRequest true "Index"
// @Success     200 {object} state.GalleryView
// @Router      /session/gallery/index [put]
func (h *Handlers) SetImageIndex(c *gin.Context) {
	var req IndexRequest
	if !bindJSON(c, &req) {
		return
	}
	h.gallery(c, func(st *state.State) error {
		st.SetImageIndex(req.Index)
		return nil
	})
}

func (h *Handlers) gallery(c *gin.Context, fn func(*state.State) error) {
	var view state.GalleryView
	err := h.withState(c, func(st *state.State) error {
		if err := fn(st); err != nil {
			return err
		}
		view = st.Gallery()
		return nil
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

// RequestDelete godoc
// @ID          requestDelete
// @Summary     Ask to delete a listing or agent
// @Description Records the intent and opens the confirmation modal. Nothing is deleted until confirmed.
// @Tags        Session
// @Accept      json
// @Produce     json
// @Param       body body handlers.DeleteRequest true "Target"
// @Success     200 {object} handlers.DeleteResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /session/delete [post]
func (h *Handlers) RequestDelete(c *gin.Context) {
	var req DeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	target, err := uistate.ParseDeleteTarget(req.Target)
	if err != nil {
		failField(c, http.StatusBadRequest, ErrCodeValidation, "target", "target must be rent, sale or agent")
		return
	}
	var resp DeleteResponse
	err = h.withState(c, func(st *state.State) error {
		msg, err := st.RequestDelete(c.Request.Context(), target, req.ID)
		if err != nil {
			return err
		}
		in, _ := st.PendingDelete()
		resp = DeleteResponse{Intent: in, Message: msg}
		return nil
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, resp)
}

// ConfirmDelete godoc
// @ID          confirmDelete
// @Summary     Delete the pending record
// @Description The intent is cleared and the modal closed whether or not the delete succeeds.
// @Tags        Session
// @Produce     json
// @Success     200 {object} uistate.Intent
// @Failure     409 {object} handlers.ErrorResponse "Nothing pending"
// @Router      /session/delete/confirm [post]
func (h *Handlers) ConfirmDelete(c *gin.Context) {
	var done uistate.Intent
	err := h.withState(c, func(st *state.State) (err error) {
		done, err = st.ConfirmDelete(c.Request.Context())
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, done)
}

// CancelDelete godoc
// @ID       cancelDelete
// @Summary  Drop the pending delete
// @Tags     Session
// @Success  204 {string} string "No Content"
// @Router   /session/delete [delete]
func (h *Handlers) CancelDelete(c *gin.Context) {
	err := h.withState(c, func(st *state.State) error {
		st.CancelDelete()
		return nil
	})
	if err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// respondState applies fn and answers with the session summary.
func (h *Handlers) respondState(c *gin.Context, status int, fn func(*state.State) error) {
	var resp SessionResponse
	err := h.withState(c, func(st *state.State) error {
		if err := fn(st); err != nil {
			return err
		}
		resp = SessionResponse{
			Filters:  st.Filters(),
			Sort:     st.Sort(),
			Page:     st.Page(),
			PageSize: st.PageSize(),
			Cache:    st.CacheStats(),
			Gallery:  st.Gallery(),
			Modal:    st.Modal().ID(),
		}
		if in, pending := st.PendingDelete(); pending {
			resp.Pending = &in
		}
		return nil
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, status, resp)
}
