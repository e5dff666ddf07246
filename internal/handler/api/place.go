package api

import (
	"net/http"

	reqdto "slot-reservation/internal/handler/dto/request"
	resdto "slot-reservation/internal/handler/dto/response"
	"slot-reservation/internal/handler/httperr"
	"slot-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PlaceHandler struct {
	q queries.PlaceQueries
}

func NewPlaceHandler(q queries.PlaceQueries) *PlaceHandler {
	return &PlaceHandler{q: q}
}

// @Summary Resolve place
// @Description Resolve a bare id to a parking lot or EV station; parking wins when both exist and no type is given
// @Tags places
// @Produce json
// @Param id path int true "Resource ID"
// @Param type query string false "parking or ev"
// @Success 200 {object} resdto.FavoriteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /places/{id} [get]
func (h *PlaceHandler) Resolve(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	hint, err := reqdto.ParseTypeHint(c.Query("type"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	view, err := h.q.Resolve(c.Request.Context(), hint, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromFavoriteView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
