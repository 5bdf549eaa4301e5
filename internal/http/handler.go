package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

type Handler struct {
	vehicleService       *service.VehicleService
	driverService        *service.DriverService
	assignmentService    *service.AssignmentService
	blockService         *service.BlockService
	documentService      *service.DocumentService
	serviceRecordService *service.ServiceRecordService
	log                  zerolog.Logger
}

func NewHandler(
	vehicleService *service.VehicleService,
	driverService *service.DriverService,
	assignmentService *service.AssignmentService,
	blockService *service.BlockService,
	documentService *service.DocumentService,
	serviceRecordService *service.ServiceRecordService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		vehicleService:       vehicleService,
		driverService:        driverService,
		assignmentService:    assignmentService,
		blockService:         blockService,
		documentService:      documentService,
		serviceRecordService: serviceRecordService,
		log:                  log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	fleet := r.Group("/fleet")
	fleet.Use(authMiddleware)

	vehicles := fleet.Group("/vehicles")
	{
		vehicles.POST("", h.registerVehicle)
		vehicles.GET("", h.listVehicles)
		vehicles.GET("/:id", h.getVehicle)
		vehicles.PUT("/:id/odometer", h.updateOdometer)
		vehicles.GET("/:id/assignments", h.listVehicleAssignments)
		vehicles.GET("/:id/blocks", h.listVehicleBlocks)
		vehicles.GET("/:id/service-records", h.listServiceRecords)
	}

	drivers := fleet.Group("/drivers")
	{
		drivers.POST("", h.registerDriver)
		drivers.GET("", h.listDrivers)
		drivers.GET("/:id", h.getDriver)
	}

	assignments := fleet.Group("/assignments")
	{
		assignments.POST("", h.createAssignment)
		assignments.GET("", h.listAssignments)
		assignments.GET("/:id", h.getAssignment)
		assignments.PUT("/:id/complete", h.completeAssignment)
		assignments.PUT("/:id/cancel", h.cancelAssignment)
	}

	blocks := fleet.Group("/blocks")
	{
		blocks.POST("", h.createBlock)
		blocks.PUT("/:id/complete", h.completeBlock)
	}

	documents := fleet.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
	}

	fleet.POST("/service-records", h.createServiceRecord)
}

func (h *Handler) registerVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		PlateNumber string `json:"plate_number" binding:"required"`
		Model       string `json:"model" binding:"required"`
		Year        int    `json:"year" binding:"required"`
		OdometerKm  int    `json:"odometer_km"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Register(c.Request.Context(), principal, service.RegisterVehicleInput{
		PlateNumber: req.PlateNumber,
		Model:       req.Model,
		Year:        req.Year,
		OdometerKm:  req.OdometerKm,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

func (h *Handler) getVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	vehicle, err := h.vehicleService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) listVehicles(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	vehicles, err := h.vehicleService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicles))
}

func (h *Handler) updateOdometer(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		OdometerKm int `json:"odometer_km" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.UpdateOdometer(c.Request.Context(), principal, c.Param("id"), req.OdometerKm)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) registerDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		FullName      string `json:"full_name" binding:"required"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
		LicenseNumber string `json:"license_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	driver, err := h.driverService.Register(c.Request.Context(), principal, service.RegisterDriverInput{
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(driver))
}

func (h *Handler) getDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	driver, err := h.driverService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) listDrivers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	drivers, err := h.driverService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(drivers))
}

func (h *Handler) createAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		VehicleID string `json:"vehicle_id" binding:"required"`
		DriverID  string `json:"driver_id" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
		Reason    string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), principal, service.CreateAssignmentInput{
		VehicleID: req.VehicleID,
		DriverID:  req.DriverID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(assignment))
}

func (h *Handler) getAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	assignment, err := h.assignmentService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) listAssignments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter, err := assignmentFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid filter"))
		return
	}

	assignments, err := h.assignmentService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignments))
}

func (h *Handler) listVehicleAssignments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle id"))
		return
	}

	filter := service.AssignmentFilter{VehicleID: &vehicleID}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		s := model.AssignmentStatus(strings.ToUpper(status))
		filter.Status = &s
	}

	assignments, err := h.assignmentService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignments))
}

func (h *Handler) completeAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		CompletionTime string `json:"completion_time"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
	}

	var completionAt *time.Time
	if req.CompletionTime != "" {
		t, err := time.Parse(time.RFC3339, req.CompletionTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid completion_time"))
			return
		}
		completionAt = &t
	}

	assignment, err := h.assignmentService.Complete(c.Request.Context(), principal, c.Param("id"), completionAt)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) cancelAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	assignment, err := h.assignmentService.Cancel(c.Request.Context(), principal, c.Param("id"), reason)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) createBlock(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		VehicleID string `json:"vehicle_id" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
		EndTime   string `json:"end_time" binding:"required"`
		Reason    string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	block, err := h.blockService.Create(c.Request.Context(), principal, service.CreateBlockInput{
		VehicleID: req.VehicleID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(block))
}

func (h *Handler) completeBlock(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	block, err := h.blockService.Complete(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(block))
}

func (h *Handler) listVehicleBlocks(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	blocks, err := h.blockService.ListByVehicle(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(blocks))
}

func (h *Handler) createDocument(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		OwnerType  string `json:"owner_type" binding:"required"`
		OwnerID    string `json:"owner_id" binding:"required"`
		Type       string `json:"type" binding:"required"`
		IssueDate  string `json:"issue_date" binding:"required"`
		ExpiryDate string `json:"expiry_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	document, err := h.documentService.Create(c.Request.Context(), principal, service.CreateDocumentInput{
		OwnerType:  strings.ToUpper(req.OwnerType),
		OwnerID:    req.OwnerID,
		Type:       req.Type,
		IssueDate:  req.IssueDate,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(document))
}

func (h *Handler) listDocuments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	ownerType := strings.ToUpper(strings.TrimSpace(c.Query("owner_type")))
	ownerID := strings.TrimSpace(c.Query("owner_id"))
	if ownerType == "" || ownerID == "" {
		c.JSON(http.StatusBadRequest, errorResponse("owner_type and owner_id are required"))
		return
	}

	documents, err := h.documentService.ListByOwner(c.Request.Context(), principal, ownerType, ownerID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(documents))
}

func (h *Handler) createServiceRecord(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		VehicleID     string `json:"vehicle_id" binding:"required"`
		LastServiceKm int    `json:"last_service_km"`
		CurrentKm     int    `json:"current_km"`
		NextServiceKm int    `json:"next_service_km" binding:"required"`
		ServiceDate   string `json:"service_date" binding:"required"`
		Description   string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	record, err := h.serviceRecordService.Create(c.Request.Context(), principal, service.CreateServiceRecordInput{
		VehicleID:     req.VehicleID,
		LastServiceKm: req.LastServiceKm,
		CurrentKm:     req.CurrentKm,
		NextServiceKm: req.NextServiceKm,
		ServiceDate:   req.ServiceDate,
		Description:   req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(record))
}

func (h *Handler) listServiceRecords(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	records, err := h.serviceRecordService.ListByVehicle(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(records))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		var conflictErr *service.ConflictError
		if errors.As(err, &conflictErr) {
			c.JSON(http.StatusConflict, gin.H{
				"error": conflictErr.Error(),
				"conflict": gin.H{
					"resource_kind": conflictErr.Kind,
					"record_type":   conflictErr.RecordType,
					"record_id":     conflictErr.ConflictID,
					"window_start":  conflictErr.WindowStart,
					"window_end":    conflictErr.WindowEnd,
				},
			})
			return
		}
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func assignmentFilterFromQuery(c *gin.Context) (service.AssignmentFilter, error) {
	filter := service.AssignmentFilter{}

	if raw := strings.TrimSpace(c.Query("vehicle_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.VehicleID = &id
	}
	if raw := strings.TrimSpace(c.Query("driver_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.DriverID = &id
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := model.AssignmentStatus(strings.ToUpper(raw))
		filter.Status = &status
	}

	return filter, nil
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
