package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/gym_management_app/internal/core/ports/services"
	"github.com/SscSPs/gym_management_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

func newAttendanceHandler(as portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{attendanceService: as}
}

func registerAttendanceRoutes(rg *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(attendanceService)

	rg.POST("/attendance", h.markAttendance)
	rg.GET("/accounts/:id/attendance", h.listAttendance)
}

// markAttendance godoc
// @Summary Mark today's attendance
// @Description Marks the caller, or another account when permitted. A second mark on the same day updates the existing record.
// @Tags attendance
// @Accept json
// @Produce json
// @Param request body dto.MarkAttendanceRequest true "Attendance"
// @Success 201 {object} dto.MutationResponse{data=dto.AttendanceResponse} "New record for the day"
// @Success 200 {object} dto.MutationResponse{data=dto.AttendanceResponse} "Existing record updated"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /attendance [post]
func (h *attendanceHandler) markAttendance(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, created, err := h.attendanceService.MarkAttendance(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to mark attendance")
		return
	}
	if created {
		mutationResponse(c, http.StatusCreated, "Attendance marked", dto.ToAttendanceResponse(record))
		return
	}
	mutationResponse(c, http.StatusOK, "Attendance updated", dto.ToAttendanceResponse(record))
}

// listAttendance godoc
// @Summary List an account's attendance
// @Tags attendance
// @Produce json
// @Param id path string true "Account ID"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date, inclusive (YYYY-MM-DD)"
// @Success 200 {array} dto.AttendanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/attendance [get]
func (h *attendanceHandler) listAttendance(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	records, err := h.attendanceService.ListAttendance(c.Request.Context(), actor, c.Param("id"), q.ToDateRange())
	if err != nil {
		respondError(c, err, "Failed to list attendance")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAttendanceResponse(records))
}
