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

type FavoriteHandler struct {
	cmds commands.FavoriteCommands
	q    queries.FavoriteQueries
}

func NewFavoriteHandler(cmds commands.FavoriteCommands, q queries.FavoriteQueries) *FavoriteHandler {
	return &FavoriteHandler{cmds: cmds, q: q}
}

// @Summary List favorites
// @Description Parking lots and EV stations in one type-tagged list
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.FavoriteResponse
// @Failure 401 {object} httperr.Response
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	views, err := h.q.List(c.Request.Context(), owner)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromFavoriteViews(views)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Add favorite
// @Description Without place_type the id is resolved as parking first, then EV
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param request body reqdto.AddFavoriteRequest false "Namespace hint"
// @Success 201 {object} resdto.FavoriteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /favorites/{id} [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	var req reqdto.AddFavoriteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	hint, err := reqdto.ParseTypeHint(req.PlaceType)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.cmds.AddFavorite(c.Request.Context(), owner, id, hint)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromFavoriteView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Remove favorite
// @Description Without place_type the id is removed from both namespaces
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Resource ID"
// @Param place_type query string false "parking or ev"
// @Success 200 {object} resdto.RemoveFavoriteResponse
// @Failure 400 {object} httperr.Response
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	hint, err := reqdto.ParseTypeHint(c.Query("place_type"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	removed, err := h.cmds.RemoveFavorite(c.Request.Context(), owner, id, hint)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RemoveFavoriteResponse{Removed: removed})
}

// @Summary Clear favorites
// @Tags favorites
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} httperr.Response
// @Router /favorites [delete]
func (h *FavoriteHandler) Clear(c *gin.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}
	if err := h.cmds.ClearFavorites(c.Request.Context(), owner); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
