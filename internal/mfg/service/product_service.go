package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/repository"
	"github.com/redis/go-redis/v9"
)

const productCacheTTL = 10 * time.Minute

type ProductService struct {
	repo *repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo *repository.ProductRepository, rdb *redis.Client) *ProductService {
	return &ProductService{repo: repo, rdb: rdb}
}

// Resolve 按名称模糊匹配唯一成品。零命中返回ErrProductNotFound；
// 多命中时若存在精确名称匹配（忽略大小写）则取之，否则返回ErrAmbiguousProduct。
func (s *ProductService) Resolve(ctx context.Context, search string) (*entity.Product, error) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, &ValidationError{Details: []string{"product_search is required"}}
	}

	matches, err := s.repo.SearchFinishedGoods(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrProductNotFound, search)
	case 1:
		return &matches[0], nil
	}

	for i := range matches {
		if strings.EqualFold(matches[i].Name, search) {
			return &matches[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q matches %d products", ErrAmbiguousProduct, search, len(matches))
}

// Get 按ID读取产品，产品在本流程中只读，可安全走redis缓存
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	cacheKey := "product:" + id

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var p entity.Product
			if json.Unmarshal([]byte(cached), &p) == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(p); err == nil {
			s.rdb.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}
	return p, nil
}

func (s *ProductService) List(ctx context.Context, params repository.ProductListParams) ([]entity.Product, int64, error) {
	return s.repo.List(ctx, params)
}

type CreateProductRequest struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	Description  string  `json:"description"`
	StandardCost float64 `json:"standard_cost"`
}

func (s *ProductService) Create(ctx context.Context, req CreateProductRequest, userID string) (*entity.Product, error) {
	var details []string
	if strings.TrimSpace(req.SKU) == "" {
		details = append(details, "sku is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, "name is required")
	}
	switch req.Category {
	case entity.CategoryRawMaterial, entity.CategoryFinishedGood:
	case "":
		details = append(details, "category is required")
	default:
		details = append(details, "category must be raw_material or finished_good")
	}
	if len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	p := &entity.Product{
		ID:           uuid.New().String(),
		SKU:          strings.TrimSpace(req.SKU),
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		Unit:         req.Unit,
		Description:  req.Description,
		StandardCost: req.StandardCost,
		Status:       entity.ProductStatusActive,
		CreatedBy:    userID,
	}
	if p.Unit == "" {
		p.Unit = "pcs"
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if s.rdb != nil {
		s.rdb.Del(ctx, "product:"+p.ID)
	}
	return p, nil
}
