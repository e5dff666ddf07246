//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"slot-reservation/internal/domain/reservation"
	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/handler/api"
	resdto "slot-reservation/internal/handler/dto/response"
	"slot-reservation/internal/usecase/commands"
	"slot-reservation/internal/usecase/queries"
	"slot-reservation/internal/usecase/shared"
	"slot-reservation/tests/common/builder"
	"slot-reservation/tests/common/httptest"
	"slot-reservation/tests/common/testutil"
	commandsmock "slot-reservation/tests/mock/commands"
	queriesmock "slot-reservation/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	ownerID      uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.ownerID = uuid.New()

	h := api.NewReservationHandler(s.mockCommands, s.mockQueries)
	auth := fakeAuth(s.ownerID)
	s.router.POST("/reservations", auth, h.Create)
	s.router.GET("/reservations/:id", auth, h.Get)
	s.router.DELETE("/reservations/:id", auth, h.Cancel)
	s.router.GET("/my-reservations", auth, h.ListMine)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func (s *ReservationHandlerTestSuite) resourceFor(b *builder.ReservationBuilder) *resource.Resource {
	res, err := builder.NewResourceBuilder().WithType(b.ResourceKey.Type).WithID(b.ResourceKey.ID).BuildDomain()
	s.Require().NoError(err)
	return res
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	b := builder.NewReservationBuilder().WithOwnerID(s.ownerID)
	reqBody := b.BuildCreateRequest()
	returnView := b.BuildView(s.resourceFor(b))

	s.Run("success: returns 201 Created with the price quote", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.CreateReservationRequest) (*queries.ReservationView, error) {
				s.Equal(s.ownerID, req.OwnerID)
				s.Equal(resource.NewKey(resource.TypeParking, 1), req.Resource)
				s.Equal(5, req.SlotIndex)
				s.True(req.StartTime.Equal(b.StartTime))
				return returnView, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(int64(1), response.ID)
		s.Equal("active", response.Status)
		s.Equal("Central Parking", response.ResourceName)
		s.True(response.TotalPrice.Valid)
		s.Equal("2000", response.TotalPrice.Decimal.String())
		s.Nil(response.CancelledAt)
	})

	s.Run("success: slot index zero is a real index", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req commands.CreateReservationRequest) (*queries.ReservationView, error) {
				s.Equal(0, req.SlotIndex)
				return returnView, nil
			}).Times(1)

		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("slot_index", 0))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on malformed bodies", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
			msg    string
		}{
			{name: "missing field: resource_type", mutate: testutil.Field("resource_type", nil), msg: "Invalid request"},
			{name: "missing field: resource_id", mutate: testutil.Field("resource_id", nil), msg: "Invalid request"},
			{name: "missing field: slot_index", mutate: testutil.Field("slot_index", nil), msg: "Invalid request"},
			{name: "missing field: start_time", mutate: testutil.Field("start_time", nil), msg: "Invalid request"},
			{name: "unparseable time", mutate: testutil.Field("end_time", "tomorrow"), msg: "Invalid request"},
			{name: "unknown resource type", mutate: testutil.Field("resource_type", "bicycle"), msg: "resource type must be parking or ev"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, tc.msg)
			})
		}
	})

	s.Run("error: maps ledger errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "slot taken", commandsError: commands.ErrSlotOccupied, expectedStatus: http.StatusConflict, expectedMsg: "slot already reserved"},
			{name: "unknown resource", commandsError: shared.ErrResourceNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "resource not found"},
			{name: "index out of range", commandsError: reservation.ErrInvalidSlotIndex, expectedStatus: http.StatusBadRequest, expectedMsg: "slot index is out of range"},
			{name: "inverted window", commandsError: reservation.ErrInvalidTimeSlot, expectedStatus: http.StatusBadRequest, expectedMsg: "end time must be after start time"},
			{name: "invariant violation", commandsError: commands.ErrAvailabilityUnderflow, expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal error"},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGet / TestCancel / TestListMine
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	b := builder.NewReservationBuilder().WithID(42).WithOwnerID(s.ownerID)

	s.Run("success: returns the caller's reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.ownerID, int64(42)).
			Return(b.BuildView(s.resourceFor(b)), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/42", nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(42), response.ID)
		s.Equal(5, response.SlotIndex)
	})

	s.Run("error: 403 Forbidden for another owner's reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.ownerID, int64(42)).
			Return(nil, queries.ErrReservationNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/42", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another owner")
	})

	s.Run("error: 404 Not Found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.ownerID, int64(43)).
			Return(nil, shared.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/43", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestCancel() {
	b := builder.NewReservationBuilder().WithID(8).WithOwnerID(s.ownerID)
	view := b.BuildView(s.resourceFor(b))
	cancelledAt := b.StartTime.Add(-30 * time.Minute)
	view.Status = reservation.StatusCancelled
	view.CancelledAt = &cancelledAt

	s.Run("success: returns the cancelled reservation", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), s.ownerID, int64(8)).
			Return(&commands.CancelReservationResult{Reservation: view, Changed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/8", nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
		s.Require().NotNil(response.CancelledAt)
		s.True(cancelledAt.Equal(*response.CancelledAt))
	})

	s.Run("success: a repeated cancel is still 200", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), s.ownerID, int64(8)).
			Return(&commands.CancelReservationResult{Reservation: view, Changed: false}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/8", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 Forbidden for another owner's reservation", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), s.ownerID, int64(8)).
			Return(nil, commands.ErrReservationNotOwned).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/reservations/8", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "another owner")
	})
}

func (s *ReservationHandlerTestSuite) TestListMine() {
	newer := builder.NewReservationBuilder().WithID(2).WithOwnerID(s.ownerID)
	older := builder.NewReservationBuilder().WithID(1).WithOwnerID(s.ownerID)

	s.Run("success: keeps the newest-first order and deleted resources", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.ownerID).
			Return([]*queries.ReservationView{newer.BuildView(nil), older.BuildView(s.resourceFor(older))}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/my-reservations", nil, "bearer-token")

		var response []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal(int64(2), response[0].ID)
		s.Equal(queries.DeletedResourceName, response[0].ResourceName)
		s.Empty(response[0].ResourceAddress)
		s.Equal("Central Parking", response[1].ResourceName)
	})

	s.Run("success: empty list is an empty array", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), s.ownerID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/my-reservations", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})
}
