package provider

import (
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	ProductRepo repository.ProductRepository

	// Services
	ProductService  *service.ProductService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
}

func (c *Container) initServices() {
	c.ProductService = service.NewProductService(c.ProductRepo, c.Config.Catalog.PageSize)
	c.CartService = service.NewCartService()
	c.CheckoutService = service.NewCheckoutService(
		c.CartService,
		time.Duration(c.Config.Checkout.ProcessingDelayMS)*time.Millisecond,
	)
}
