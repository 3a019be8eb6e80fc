package service

import (
	"sort"
	"strings"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// ProductService 商品列表业务服务
type ProductService struct {
	repo            repository.ProductRepository
	defaultPageSize int
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, defaultPageSize int) *ProductService {
	if defaultPageSize <= 0 {
		defaultPageSize = 3
	}
	return &ProductService{repo: repo, defaultPageSize: defaultPageSize}
}

// ProductQuery 列表查询参数
type ProductQuery struct {
	Category string // "all" 或精确分类
	Sort     string // default / price-low / price-high / rating / name
	Search   string // 标题或描述子串，大小写不敏感
	Page     int    // “加载更多”页码，窗口始终为 [0, page*pageSize)
	PageSize int
}

// ProductListResult 列表查询结果
type ProductListResult struct {
	Items   []models.Product `json:"items"`
	Total   int64            `json:"total"`    // 分类过滤后的目录总量
	HasMore bool             `json:"has_more"` // 搜索激活时恒为 false
}

// List 商品列表。处理顺序：分类过滤 → 排序 → 截取已加载窗口 → 搜索过滤。
// 搜索只作用于已加载窗口内的商品，不触达窗口之外的目录，
// 因此搜索期间“加载更多”不可用（HasMore 为 false）。
func (s *ProductService) List(query ProductQuery) (ProductListResult, error) {
	products, err := s.repo.ListActive()
	if err != nil {
		return ProductListResult{}, err
	}

	category := strings.TrimSpace(query.Category)
	if category != "" && category != constants.CategoryAll {
		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	sortProducts(products, query.Sort)

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	loaded := page * pageSize
	if loaded > len(products) {
		loaded = len(products)
	}
	window := products[:loaded]

	total := int64(len(products))
	search := strings.TrimSpace(query.Search)
	if search == "" {
		return ProductListResult{
			Items:   window,
			Total:   total,
			HasMore: page*pageSize < len(products),
		}, nil
	}

	needle := strings.ToLower(search)
	matched := make([]models.Product, 0, len(window))
	for _, p := range window {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return ProductListResult{
		Items:   matched,
		Total:   total,
		HasMore: false,
	}, nil
}

// Get 获取商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	return product, nil
}

// Categories 返回 "all" 加上目录中首次出现顺序的全部分类。
func (s *ProductService) Categories() ([]string, error) {
	products, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}
	categories := []string{constants.CategoryAll}
	seen := make(map[string]bool)
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	return categories, nil
}

// sortProducts 原地稳定排序，default 保持目录顺序不变。
func sortProducts(products []models.Product, sortBy string) {
	switch sortBy {
	case constants.SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Decimal.LessThan(products[j].Price.Decimal)
		})
	case constants.SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.Decimal.LessThan(products[i].Price.Decimal)
		})
	case constants.SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].RatingRate > products[j].RatingRate
		})
	case constants.SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Title < products[j].Title
		})
	}
}
