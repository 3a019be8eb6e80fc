package main

import (
	"fmt"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{
			Title:       "Wireless Bluetooth Headphones",
			Description: "Premium over-ear headphones with active noise cancellation and 30-hour battery life",
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(129.99)),
			RatingRate:  4.5,
			RatingCount: 234,
			SortOrder:   900,
			IsActive:    true,
		},
		{
			Title:       "Smart Fitness Watch",
			Description: "Water-resistant smartwatch with heart rate monitoring and GPS tracking",
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(199.99)),
			RatingRate:  4.7,
			RatingCount: 512,
			SortOrder:   890,
			IsActive:    true,
		},
		{
			Title:       "Portable USB-C Power Bank",
			Description: "20000mAh fast-charging power bank with dual USB output",
			Category:    "electronics",
			Image:       "https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(49.99)),
			RatingRate:  4.2,
			RatingCount: 189,
			SortOrder:   880,
			IsActive:    true,
		},
		{
			Title:       "Classic Cotton T-Shirt",
			Description: "Soft breathable cotton tee in a relaxed fit",
			Category:    "clothing",
			Image:       "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(19.99)),
			RatingRate:  4.0,
			RatingCount: 98,
			SortOrder:   870,
			IsActive:    true,
		},
		{
			Title:       "Slim Fit Denim Jacket",
			Description: "Timeless denim jacket with button-up front and chest pockets",
			Category:    "clothing",
			Image:       "https://images.unsplash.com/photo-1551537482-f2075a1d41f2?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			RatingRate:  4.4,
			RatingCount: 156,
			SortOrder:   860,
			IsActive:    true,
		},
		{
			Title:       "Leather Crossbody Bag",
			Description: "Compact genuine leather bag with adjustable strap",
			Category:    "clothing",
			Image:       "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(89.99)),
			RatingRate:  4.6,
			RatingCount: 203,
			SortOrder:   850,
			IsActive:    true,
		},
		{
			Title:       "Ceramic Pour-Over Coffee Set",
			Description: "Hand-glazed ceramic dripper with matching carafe for slow brewing",
			Category:    "home",
			Image:       "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(44.99)),
			RatingRate:  4.8,
			RatingCount: 87,
			SortOrder:   840,
			IsActive:    true,
		},
		{
			Title:       "Scented Soy Candle Trio",
			Description: "Three hand-poured soy candles with lavender, cedar and vanilla scents",
			Category:    "home",
			Image:       "https://images.unsplash.com/photo-1602874801006-e24f4e1a1b5e?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(29.99)),
			RatingRate:  4.3,
			RatingCount: 64,
			SortOrder:   830,
			IsActive:    true,
		},
		{
			Title:       "Minimalist Desk Lamp",
			Description: "Dimmable LED desk lamp with USB charging port and touch control",
			Category:    "home",
			Image:       "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=800",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(39.99)),
			RatingRate:  4.1,
			RatingCount: 142,
			SortOrder:   820,
			IsActive:    true,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("title = ?", prod.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Title, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Title)
			}
		} else {
			existing.Description = prod.Description
			existing.Category = prod.Category
			existing.Image = prod.Image
			existing.Price = prod.Price
			existing.RatingRate = prod.RatingRate
			existing.RatingCount = prod.RatingCount
			existing.SortOrder = prod.SortOrder
			existing.IsActive = prod.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Title, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Title)
			}
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 9 Products (electronics / clothing / home)")
}
