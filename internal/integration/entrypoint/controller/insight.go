package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ledgerkit/backend/internal/application/usecase/insight"
	"github.com/ledgerkit/backend/internal/domain/entity"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerkit/backend/internal/integration/entrypoint/middleware"
)

// InsightController handles financial insight endpoints.
type InsightController struct {
	cashflowProjectionUseCase *insight.CashflowProjectionUseCase
	pipelineSummaryUseCase    *insight.PipelineSummaryUseCase
	projectPerformanceUseCase *insight.ProjectPerformanceUseCase
	topClientsUseCase         *insight.TopClientsUseCase
	topServicesUseCase        *insight.TopServicesUseCase
	projectWorkloadUseCase    *insight.ProjectWorkloadUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(
	cashflowProjectionUseCase *insight.CashflowProjectionUseCase,
	pipelineSummaryUseCase *insight.PipelineSummaryUseCase,
	projectPerformanceUseCase *insight.ProjectPerformanceUseCase,
	topClientsUseCase *insight.TopClientsUseCase,
	topServicesUseCase *insight.TopServicesUseCase,
	projectWorkloadUseCase *insight.ProjectWorkloadUseCase,
) *InsightController {
	return &InsightController{
		cashflowProjectionUseCase: cashflowProjectionUseCase,
		pipelineSummaryUseCase:    pipelineSummaryUseCase,
		projectPerformanceUseCase: projectPerformanceUseCase,
		topClientsUseCase:         topClientsUseCase,
		topServicesUseCase:        topServicesUseCase,
		projectWorkloadUseCase:    projectWorkloadUseCase,
	}
}

// GetCashflowProjection handles GET /insights/cashflow-projection requests.
func (c *InsightController) GetCashflowProjection(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	scope := entity.OwnerScope(ctx.DefaultQuery("scope", string(entity.OwnerScopePersonal)))

	var businessID *uuid.UUID
	if businessIDStr := ctx.Query("business_id"); businessIDStr != "" {
		id, err := uuid.Parse(businessIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid business_id format",
				Code:  string(domainerror.ErrCodeInvalidScope),
			})
			return
		}
		businessID = &id
	}

	horizonDays := 0
	if horizonStr := ctx.Query("horizon_days"); horizonStr != "" {
		h, err := strconv.Atoi(horizonStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid horizon_days, expected an integer",
				Code:  string(domainerror.ErrCodeInvalidHorizon),
			})
			return
		}
		horizonDays = h
	}

	var startDate time.Time
	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		d, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid start_date format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidPeriod),
			})
			return
		}
		startDate = d
	}

	input := insight.CashflowProjectionInput{
		UserID:      userID,
		Scope:       scope,
		BusinessID:  businessID,
		HorizonDays: horizonDays,
		StartDate:   startDate,
	}

	output, err := c.cashflowProjectionUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// GetPipelineSummary handles GET /businesses/:businessId/insights/pipeline requests.
func (c *InsightController) GetPipelineSummary(ctx *gin.Context) {
	userID, businessID, ok := c.businessScope(ctx)
	if !ok {
		return
	}

	input := insight.PipelineSummaryInput{
		UserID:     userID,
		BusinessID: businessID,
	}

	output, err := c.pipelineSummaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// GetProjectPerformance handles GET /businesses/:businessId/insights/project-performance requests.
func (c *InsightController) GetProjectPerformance(ctx *gin.Context) {
	userID, businessID, ok := c.businessScope(ctx)
	if !ok {
		return
	}

	input := insight.ProjectPerformanceInput{
		UserID:     userID,
		BusinessID: businessID,
	}

	output, err := c.projectPerformanceUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// GetTopClients handles GET /businesses/:businessId/insights/top-clients requests.
func (c *InsightController) GetTopClients(ctx *gin.Context) {
	userID, businessID, ok := c.businessScope(ctx)
	if !ok {
		return
	}

	from, to, ok := c.rankingWindow(ctx)
	if !ok {
		return
	}

	input := insight.TopClientsInput{
		UserID:     userID,
		BusinessID: businessID,
		From:       from,
		To:         to,
	}

	output, err := c.topClientsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// GetTopServices handles GET /businesses/:businessId/insights/top-services requests.
func (c *InsightController) GetTopServices(ctx *gin.Context) {
	userID, businessID, ok := c.businessScope(ctx)
	if !ok {
		return
	}

	from, to, ok := c.rankingWindow(ctx)
	if !ok {
		return
	}

	input := insight.TopServicesInput{
		UserID:     userID,
		BusinessID: businessID,
		From:       from,
		To:         to,
	}

	output, err := c.topServicesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// GetProjectWorkload handles GET /projects/:projectId/insights/workload requests.
func (c *InsightController) GetProjectWorkload(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid project ID format",
			Code:  string(domainerror.ErrCodeProjectNotFound),
		})
		return
	}

	from, to, ok := c.rankingWindow(ctx)
	if !ok {
		return
	}

	input := insight.ProjectWorkloadInput{
		UserID:      userID,
		ProjectID:   projectID,
		From:        from,
		To:          to,
		Granularity: insight.Granularity(ctx.Query("granularity")),
	}

	output, err := c.projectWorkloadUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleInsightError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output)
}

// businessScope extracts the authenticated user and the business path param.
func (c *InsightController) businessScope(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, uuid.Nil, false
	}

	businessID, err := uuid.Parse(ctx.Param("businessId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid business ID format",
			Code:  string(domainerror.ErrCodeBusinessNotFound),
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, businessID, true
}

// rankingWindow parses the optional from/to query parameters.
func (c *InsightController) rankingWindow(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	var from, to *time.Time

	if fromStr := ctx.Query("from"); fromStr != "" {
		d, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid from format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidPeriod),
			})
			return nil, nil, false
		}
		from = &d
	}

	if toStr := ctx.Query("to"); toStr != "" {
		d, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid to format, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidPeriod),
			})
			return nil, nil, false
		}
		to = &d
	}

	return from, to, true
}

// handleInsightError handles insight and scope errors and returns appropriate
// HTTP responses.
func (c *InsightController) handleInsightError(ctx *gin.Context, err error) {
	var insightErr *domainerror.InsightError
	if errors.As(err, &insightErr) {
		statusCode := http.StatusBadRequest
		if insightErr.Code == domainerror.ErrCodeInsightInternalError {
			statusCode = http.StatusInternalServerError
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: insightErr.Message,
			Code:  string(insightErr.Code),
		})
		return
	}

	var scopeErr *domainerror.ScopeError
	if errors.As(err, &scopeErr) {
		statusCode := http.StatusNotFound
		if scopeErr.Code == domainerror.ErrCodeScopeOwnership {
			statusCode = http.StatusForbidden
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: scopeErr.Message,
			Code:  string(scopeErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
