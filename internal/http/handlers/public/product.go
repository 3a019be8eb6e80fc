package public

import (
	"errors"
	"strconv"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表（分类过滤 / 排序 / 搜索 / 加载更多）
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	result, err := h.ProductService.List(service.ProductQuery{
		Category: c.DefaultQuery("category", constants.CategoryAll),
		Sort:     c.DefaultQuery("sort", constants.SortDefault),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}
	response.Success(c, result)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.ProductService.Get(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to get product", err)
		return
	}
	response.Success(c, product)
}

// GetCategories 分类列表，首项固定为 "all"。
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.ProductService.Categories()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list categories", err)
		return
	}
	response.Success(c, gin.H{"categories": categories})
}
