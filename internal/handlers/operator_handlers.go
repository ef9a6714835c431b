package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"retail-order-service/internal/models"
	"retail-order-service/internal/services"
	"retail-order-service/pkg/utils"
)

type OperatorHandlers struct {
	operatorService *services.OperatorService
}

func NewOperatorHandlers(operatorService *services.OperatorService) *OperatorHandlers {
	return &OperatorHandlers{
		operatorService: operatorService,
	}
}

func (h *OperatorHandlers) GetOrderCounts(c *gin.Context) {
	counts, err := h.operatorService.OrderCountsByOperator(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, counts, "")
}

func (h *OperatorHandlers) GetOperatorOrders(c *gin.Context) {
	operatorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orders, err := h.operatorService.GetOrdersAssignedToOperator(c.Request.Context(), operatorID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, orders, "")
}

func (h *OperatorHandlers) AssignOrders(c *gin.Context) {
	var req models.AssignOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	if err := h.operatorService.AssignOrdersToOperator(c.Request.Context(), req.OrderIDs, req.OperatorID); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, nil, "Orders assigned successfully")
}

func (h *OperatorHandlers) RemoveOrders(c *gin.Context) {
	operatorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// An absent body removes every order the operator holds.
	var req struct {
		OrderIDs []int64 `json:"order_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		req.OrderIDs = nil
	}

	if err := h.operatorService.RemoveOrdersFromOperator(c.Request.Context(), operatorID, req.OrderIDs); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, nil, "Orders removed successfully")
}

func (h *OperatorHandlers) Redistribute(c *gin.Context) {
	operatorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// An absent body redistributes everything the operator holds.
	var req struct {
		OrderIDs []int64 `json:"order_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		req.OrderIDs = nil
	}

	if err := h.operatorService.Redistribute(c.Request.Context(), operatorID, req.OrderIDs); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, nil, "Orders redistributed successfully")
}

func (h *OperatorHandlers) DispatchAvailableOrders(c *gin.Context) {
	assigned, err := h.operatorService.DispatchAvailableOrders(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, gin.H{"assigned": assigned}, "Available orders dispatched")
}

func (h *OperatorHandlers) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		operators := api.Group("/operators")
		{
			operators.GET("/counts", h.GetOrderCounts)
			operators.GET("/:id/orders", h.GetOperatorOrders)
			operators.POST("/assign", h.AssignOrders)
			operators.DELETE("/:id/orders", h.RemoveOrders)
			operators.POST("/:id/redistribute", h.Redistribute)
			operators.POST("/dispatch", h.DispatchAvailableOrders)
		}
	}
}
