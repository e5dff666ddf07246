package api

import (
	"net/http"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/domain/slot"
	reqdto "slot-reservation/internal/handler/dto/request"
	resdto "slot-reservation/internal/handler/dto/response"
	"slot-reservation/internal/handler/httperr"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResourceHandler serves one namespace. The router mounts one instance under
// /parking-spots and another under /ev-stations.
type ResourceHandler struct {
	kind resource.Type
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewResourceHandler(kind resource.Type, cmds commands.CatalogCommands, q queries.CatalogQueries) *ResourceHandler {
	return &ResourceHandler{kind: kind, cmds: cmds, q: q}
}

type ResourceHandlers struct {
	Parking *ResourceHandler
	EV      *ResourceHandler
}

func NewResourceHandlers(cmds commands.CatalogCommands, q queries.CatalogQueries) *ResourceHandlers {
	return &ResourceHandlers{
		Parking: NewResourceHandler(resource.TypeParking, cmds, q),
		EV:      NewResourceHandler(resource.TypeEV, cmds, q),
	}
}

// @Summary List resources
// @Description List parking lots or EV stations sorted by id
// @Tags resources
// @Produce json
// @Param page query int false "Page (1-based)"
// @Param per_page query int false "Items per page (1-100)"
// @Param min_available query int false "Minimum free slots"
// @Param ev_charging query bool false "Only parking lots with EV charging"
// @Success 200 {object} resdto.ResourcePageResponse
// @Failure 400 {object} httperr.Response
// @Router /parking-spots [get]
// @Router /ev-stations [get]
func (h *ResourceHandler) List(c *gin.Context) {
	h.list(c, nil)
}

// @Summary List own resources
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (1-based)"
// @Param per_page query int false "Items per page (1-100)"
// @Success 200 {object} resdto.ResourcePageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /my-parking-spots [get]
// @Router /my-ev-stations [get]
func (h *ResourceHandler) ListMine(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	h.list(c, &owner)
}

func (h *ResourceHandler) list(c *gin.Context, owner *uuid.UUID) {
	var query reqdto.ListResourcesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}
	page, err := h.q.List(c.Request.Context(), query.ToParams(h.kind, owner))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromResourcePage(page)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get resource detail
// @Description Descriptive fields, availability summary and the slot grid
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} resdto.ResourceDetailResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /parking-spots/{id} [get]
// @Router /ev-stations/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetDetail(c.Request.Context(), resource.NewKey(h.kind, id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromResourceDetailView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get availability
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 404 {object} httperr.Response
// @Router /parking-spots/{id}/availability [get]
// @Router /ev-stations/{id}/availability [get]
func (h *ResourceHandler) Availability(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	view, err := h.q.Availability(c.Request.Context(), resource.NewKey(h.kind, id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse(*view))
}

// @Summary Get slot state
// @Tags resources
// @Produce json
// @Param id path int true "Resource ID"
// @Param index path int true "Slot index"
// @Success 200 {object} resdto.SlotStateResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /parking-spots/{id}/slots/{index} [get]
// @Router /ev-stations/{id}/slots/{index} [get]
func (h *ResourceHandler) SlotState(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	view, err := h.q.SlotState(c.Request.Context(), slot.NewKey(resource.NewKey(h.kind, id), index))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotStateView(view))
}

// @Summary Create resource
// @Description Register a parking lot or EV station owned by the caller; every slot starts free
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Create resource request"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /parking-spots [post]
// @Router /ev-stations [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	descriptor, err := req.ToDescriptor()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.CreateResource(c.Request.Context(), h.kind, owner, descriptor)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromResourceView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Update resource
// @Description Partial update; id, available_count and total_slots are rejected
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Update resource request"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /parking-spots/{id} [put]
// @Router /ev-stations/{id} [put]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.UpdateResource(c.Request.Context(), resource.NewKey(h.kind, id), owner, patch)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromResourceView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Delete resource
// @Description Deletes the resource and cancels its active reservations
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} resdto.DeleteResourceResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /parking-spots/{id} [delete]
// @Router /ev-stations/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	result, err := h.cmds.DeleteResource(c.Request.Context(), resource.NewKey(h.kind, id), owner)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DeleteResourceResponse{CancelledReservations: result.CancelledReservations})
}
