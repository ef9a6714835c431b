package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"retail-order-service/internal/models"
	"retail-order-service/internal/services"
	"retail-order-service/pkg/utils"
)

type ProductHandlers struct {
	orderService *services.OrderService
}

func NewProductHandlers(orderService *services.OrderService) *ProductHandlers {
	return &ProductHandlers{
		orderService: orderService,
	}
}

func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	product, err := h.orderService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusCreated, product, "Product created successfully")
}

func (h *ProductHandlers) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.orderService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, product, "")
}

func (h *ProductHandlers) UpdateProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}
	product.ID = productID

	updated, err := h.orderService.UpdateProduct(c.Request.Context(), &product)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, updated, "Product updated successfully")
}

func (h *ProductHandlers) DeleteProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteProduct(c.Request.Context(), productID); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, nil, "Product deleted successfully")
}

func (h *ProductHandlers) CountProductUsage(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	count, err := h.orderService.CountProductAssignation(c.Request.Context(), productID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, gin.H{"product_id": productID, "usage_count": count}, "")
}

func (h *ProductHandlers) CountProductsByName(c *gin.Context) {
	name := c.Query("name")

	count, err := h.orderService.CountProductsByName(c.Request.Context(), name)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, gin.H{"name": name, "count": count}, "")
}

func (h *ProductHandlers) GetOrdersByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orders, err := h.orderService.GetOrdersByProductIDs(c.Request.Context(), []int64{productID})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	utils.RespondWithSuccess(c, http.StatusOK, orders, "")
}

func (h *ProductHandlers) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.POST("", h.CreateProduct)
			products.GET("/count", h.CountProductsByName)
			products.GET("/:id", h.GetProduct)
			products.PUT("/:id", h.UpdateProduct)
			products.DELETE("/:id", h.DeleteProduct)
			products.GET("/:id/usage", h.CountProductUsage)
			products.GET("/:id/orders", h.GetOrdersByProduct)
		}
	}
}
