package api

import (
	"net/http"

	reqdto "slot-reservation/internal/handler/dto/request"
	resdto "slot-reservation/internal/handler/dto/response"
	"slot-reservation/internal/handler/httperr"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Take one free slot of a resource for the caller
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Create reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(owner)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.CreateReservation(c.Request.Context(), cmd)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusCreated, view)
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), owner, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, view)
}

// @Summary Cancel reservation
// @Description Cancelling an already cancelled reservation returns it unchanged
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	result, err := h.cmds.CancelReservation(c.Request.Context(), owner, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK, result.Reservation)
}

// @Summary List own reservations
// @Description Newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Router /my-reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	views, err := h.q.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromReservationViews(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) respond(c *gin.Context, status int, view *queries.ReservationView) {
	res, err := resdto.FromReservationView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, res)
}
