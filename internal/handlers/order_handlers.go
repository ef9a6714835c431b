package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"retail-order-service/internal/models"
	"retail-order-service/internal/services"
	"retail-order-service/pkg/utils"
)

type OrderHandlers struct {
	orderService   *services.OrderService
	historyService *services.HistoryService
}

func NewOrderHandlers(orderService *services.OrderService, historyService *services.HistoryService) *OrderHandlers {
	return &OrderHandlers{
		orderService:   orderService,
		historyService: historyService,
	}
}

func (h *OrderHandlers) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusCreated, order, "Order created successfully")
}

func (h *OrderHandlers) GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, order, "")
}

func (h *OrderHandlers) GetOrderProducts(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	products, err := h.orderService.GetOrderProducts(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, products, "")
}

func (h *OrderHandlers) GetAvailableOrders(c *gin.Context) {
	orders, err := h.orderService.GetAvailableOrders(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, orders, "")
}

// SearchOrders composes an order filter from query parameters. Every
// parameter is optional and filters combine with AND semantics.
func (h *OrderHandlers) SearchOrders(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	orders, err := h.orderService.GetOrdersByCriteria(c.Request.Context(), criteria)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, orders, "")
}

func (h *OrderHandlers) GetOrdersByCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "customerId")
	if !ok {
		return
	}

	orders, err := h.orderService.GetOrdersForCustomer(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, orders, "")
}

func (h *OrderHandlers) GetMyOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrdersForCurrentCustomer(c.Request.Context(), IdentityFromContext(c))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, orders, "")
}

func (h *OrderHandlers) UpdateDeliveryDetails(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var update models.DeliveryDetailsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	order, err := h.orderService.UpdateDeliveryDetails(c.Request.Context(), orderID, update)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, order, "Delivery details updated successfully")
}

func (h *OrderHandlers) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, order, "Order status updated successfully")
}

func (h *OrderHandlers) TransferToPaid(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.TransferToPaid(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, order, "Order transferred to paid")
}

func (h *OrderHandlers) DeleteOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), orderID); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, nil, "Order deleted successfully")
}

func (h *OrderHandlers) AssignProducts(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ProductIDs []int64 `json:"product_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	order, err := h.orderService.AssignProducts(c.Request.Context(), orderID, req.ProductIDs)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, order, "Products assigned successfully")
}

func (h *OrderHandlers) RemoveProducts(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// An absent body means "remove everything".
	var req struct {
		ProductIDs []int64 `json:"product_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		req.ProductIDs = nil
	}

	order, err := h.orderService.RemoveProducts(c.Request.Context(), orderID, req.ProductIDs)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, order, "Products removed successfully")
}

func (h *OrderHandlers) GetOrderHistory(c *gin.Context) {
	orderNumber, ok := parseIDParam(c, "orderNumber")
	if !ok {
		return
	}

	history, err := h.historyService.GetHistoryForOrder(c.Request.Context(), orderNumber)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, history, "")
}

func (h *OrderHandlers) ReplayOrderStates(c *gin.Context) {
	orderNumber, ok := parseIDParam(c, "orderNumber")
	if !ok {
		return
	}

	states, err := h.historyService.ReplayOrderStates(c.Request.Context(), orderNumber)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, states, "")
}

func (h *OrderHandlers) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		orders := api.Group("/orders")
		{
			orders.POST("", h.CreateOrder)
			orders.GET("/available", h.GetAvailableOrders)
			orders.GET("/search", h.SearchOrders)
			orders.GET("/:id", h.GetOrder)
			orders.GET("/:id/products", h.GetOrderProducts)
			orders.PUT("/:id/delivery", h.UpdateDeliveryDetails)
			orders.PUT("/:id/status", h.UpdateOrderStatus)
			orders.PUT("/:id/paid", h.TransferToPaid)
			orders.POST("/:id/products", h.AssignProducts)
			orders.DELETE("/:id/products", h.RemoveProducts)
			orders.DELETE("/:id", h.DeleteOrder)
		}

		customers := api.Group("/customers")
		{
			customers.GET("/me/orders", h.GetMyOrders)
			customers.GET("/:customerId/orders", h.GetOrdersByCustomer)
		}

		history := api.Group("/history")
		{
			history.GET("/:orderNumber", h.GetOrderHistory)
			history.GET("/:orderNumber/states", h.ReplayOrderStates)
		}
	}
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", "invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

func criteriaFromQuery(c *gin.Context) (models.OrderCriteria, error) {
	var criteria models.OrderCriteria

	var err error
	if criteria.ProductIDs, err = parseInt64List(c.Query("product_ids")); err != nil {
		return criteria, err
	}
	if criteria.OrderNumbers, err = parseInt64List(c.Query("order_numbers")); err != nil {
		return criteria, err
	}

	if raw := c.Query("statuses"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			criteria.Statuses = append(criteria.Statuses, models.OrderStatus(strings.TrimSpace(s)))
		}
	}

	if criteria.BookingTimeBottom, err = parseTimeQuery(c.Query("booking_time_from")); err != nil {
		return criteria, err
	}
	if criteria.BookingTimeTop, err = parseTimeQuery(c.Query("booking_time_to")); err != nil {
		return criteria, err
	}

	if raw := c.Query("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return criteria, err
		}
		criteria.Paid = &paid
	}

	if criteria.CostBottom, err = parseFloatQuery(c.Query("cost_from")); err != nil {
		return criteria, err
	}
	if criteria.CostTop, err = parseFloatQuery(c.Query("cost_to")); err != nil {
		return criteria, err
	}

	return criteria, nil
}

func parseInt64List(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseFloatQuery(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
