package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type stubCatalog struct {
	products []models.Product
}

func (s *stubCatalog) ListActive() ([]models.Product, error) {
	items := make([]models.Product, len(s.products))
	copy(items, s.products)
	return items, nil
}

func (s *stubCatalog) GetByID(id uint) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, nil
}

func (s *stubCatalog) Create(product *models.Product) error {
	s.products = append(s.products, *product)
	return nil
}

func (s *stubCatalog) Count() (int64, error) {
	return int64(len(s.products)), nil
}

func storefrontProduct(id uint, title, category string, price float64) models.Product {
	return models.Product{
		ID:       id,
		Title:    title,
		Category: category,
		Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		IsActive: true,
	}
}

func newTestRouter(t *testing.T, checkoutDelay time.Duration) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Catalog.PageSize = 3

	catalog := &stubCatalog{products: []models.Product{
		storefrontProduct(1, "Wireless Headphones", "electronics", 129.99),
		storefrontProduct(2, "Fitness Watch", "electronics", 199.99),
		storefrontProduct(3, "Cotton Shirt", "clothing", 19.99),
		storefrontProduct(4, "Desk Lamp", "home", 39.99),
	}}

	carts := service.NewCartService()
	container := &provider.Container{
		Config:          cfg,
		ProductRepo:     catalog,
		ProductService:  service.NewProductService(catalog, cfg.Catalog.PageSize),
		CartService:     carts,
		CheckoutService: service.NewCheckoutService(carts, checkoutDelay),
	}
	return SetupRouter(cfg, container)
}

type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, session *http.Cookie) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		req.AddCookie(session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("%s %s status want 200 got %d", method, path, w.Code)
	}
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s unmarshal response failed: %v", method, path, err)
	}
	return w, resp
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("session cookie not issued")
	return nil
}

func TestProductListingEndpoint(t *testing.T) {
	r := newTestRouter(t, time.Second)

	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/public/products", "", nil)
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	var result struct {
		Items   []models.Product `json:"items"`
		Total   int64            `json:"total"`
		HasMore bool             `json:"has_more"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("unmarshal listing failed: %v", err)
	}
	if len(result.Items) != 3 {
		t.Fatalf("first page want 3 items got %d", len(result.Items))
	}
	if result.Total != 4 {
		t.Fatalf("total want 4 got %d", result.Total)
	}
	if !result.HasMore {
		t.Fatalf("first page should have more")
	}

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/public/products?category=clothing", "", nil)
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatalf("unmarshal listing failed: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].ID != 3 {
		t.Fatalf("category filter should return product 3, got %+v", result.Items)
	}
}

func TestProductNotFoundEndpoint(t *testing.T) {
	r := newTestRouter(t, time.Second)

	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/public/products/99", "", nil)
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestCartEndpoints(t *testing.T) {
	r := newTestRouter(t, time.Second)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`, nil)
	session := sessionCookie(t, w)

	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`, session)
	if resp.StatusCode != 0 {
		t.Fatalf("add item status_code want 0 got %d", resp.StatusCode)
	}

	var payload struct {
		Cart   service.CartState `json:"cart"`
		Totals service.Totals    `json:"totals"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if payload.Cart.ItemCount != 2 {
		t.Fatalf("item count want 2 got %d", payload.Cart.ItemCount)
	}
	if got := payload.Cart.Total.String(); got != "259.98" {
		t.Fatalf("cart total want 259.98 got %s", got)
	}
	if got := payload.Totals.Tax.String(); got != "20.80" {
		t.Fatalf("tax want 20.80 got %s", got)
	}

	_, resp = doJSON(t, r, http.MethodPut, "/api/v1/cart/items/1", `{"quantity":0}`, session)
	if resp.StatusCode != 400 {
		t.Fatalf("out-of-range quantity status_code want 400 got %d", resp.StatusCode)
	}

	_, resp = doJSON(t, r, http.MethodPut, "/api/v1/cart/items/1", `{"quantity":5}`, session)
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if payload.Cart.ItemCount != 5 {
		t.Fatalf("item count want 5 got %d", payload.Cart.ItemCount)
	}

	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/cart/items/1", "", session)
	var itemState struct {
		Quantity int  `json:"quantity"`
		InCart   bool `json:"in_cart"`
	}
	if err := json.Unmarshal(resp.Data, &itemState); err != nil {
		t.Fatalf("unmarshal item state failed: %v", err)
	}
	if itemState.Quantity != 5 || !itemState.InCart {
		t.Fatalf("item state want quantity 5 in cart, got %+v", itemState)
	}

	_, resp = doJSON(t, r, http.MethodDelete, "/api/v1/cart/items/1", "", session)
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if payload.Cart.ItemCount != 0 {
		t.Fatalf("cart should be empty after remove, got %d", payload.Cart.ItemCount)
	}
}

func TestCartSessionIsolation(t *testing.T) {
	r := newTestRouter(t, time.Second)

	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`, nil)
	first := sessionCookie(t, w)

	w2, resp := doJSON(t, r, http.MethodGet, "/api/v1/cart", "", nil)
	second := sessionCookie(t, w2)
	if first.Value == second.Value {
		t.Fatalf("distinct visitors should get distinct sessions")
	}

	var payload struct {
		Cart service.CartState `json:"cart"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if payload.Cart.ItemCount != 0 {
		t.Fatalf("second session cart should be empty, got %d", payload.Cart.ItemCount)
	}
}

const checkoutFormJSON = `{
	"first_name": "Jane",
	"last_name": "Doe",
	"email": "jane@example.com",
	"address": "1 Main St",
	"city": "Springfield",
	"state": "IL",
	"zip_code": "62704",
	"card_number": "4111 1111 1111 1234",
	"card_name": "Jane Doe",
	"expiry_date": "12/28",
	"cvv": "123"
}`

func TestCheckoutFlowEndpoints(t *testing.T) {
	r := newTestRouter(t, 20*time.Millisecond)

	// 空购物车进入结账：引导跳回购物车页
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/checkout", "", nil)
	session := sessionCookie(t, w)
	var guard struct {
		Step     string `json:"step"`
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(resp.Data, &guard); err != nil {
		t.Fatalf("unmarshal guard failed: %v", err)
	}
	if guard.Step != constants.CheckoutStepForm || guard.Redirect != "/cart" {
		t.Fatalf("empty cart should redirect to /cart, got %+v", guard)
	}

	// 空购物车提交被拒
	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/checkout", checkoutFormJSON, session)
	if resp.StatusCode != 400 {
		t.Fatalf("empty cart submit status_code want 400 got %d", resp.StatusCode)
	}

	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":2}`, session)

	// 表单缺失必填字段被拒
	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/checkout", `{"first_name":"Jane"}`, session)
	if resp.StatusCode != 400 {
		t.Fatalf("incomplete form status_code want 400 got %d", resp.StatusCode)
	}

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/checkout", checkoutFormJSON, session)
	if resp.StatusCode != 0 {
		t.Fatalf("submit status_code want 0 got %d", resp.StatusCode)
	}
	var status service.CheckoutStatus
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		t.Fatalf("unmarshal status failed: %v", err)
	}
	if status.Step != constants.CheckoutStepProcessing {
		t.Fatalf("step after submit want processing got %s", status.Step)
	}

	// 处理中重复提交被拒
	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/checkout", checkoutFormJSON, session)
	if resp.StatusCode != 409 {
		t.Fatalf("double submit status_code want 409 got %d", resp.StatusCode)
	}

	// 等待模拟支付完成
	deadline := time.Now().Add(2 * time.Second)
	for {
		_, resp = doJSON(t, r, http.MethodGet, "/api/v1/checkout", "", session)
		if err := json.Unmarshal(resp.Data, &status); err != nil {
			t.Fatalf("unmarshal status failed: %v", err)
		}
		if status.Step == constants.CheckoutStepSuccess {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("checkout did not reach success, step %s", status.Step)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if status.Summary == nil {
		t.Fatalf("success status should carry order summary")
	}
	if !strings.HasPrefix(status.Summary.OrderID, "ORD-") {
		t.Fatalf("order id want ORD- prefix got %s", status.Summary.OrderID)
	}
	if status.Summary.PaymentMethod.CardNumber != "**** **** **** 1234" {
		t.Fatalf("card number should be masked, got %s", status.Summary.PaymentMethod.CardNumber)
	}

	// 下单成功后购物车已清空
	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/cart", "", session)
	var payload struct {
		Cart service.CartState `json:"cart"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if payload.Cart.ItemCount != 0 {
		t.Fatalf("cart should be cleared after success, got %d", payload.Cart.ItemCount)
	}

	// 离开结账页重置流程
	_, resp = doJSON(t, r, http.MethodDelete, "/api/v1/checkout", "", session)
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		t.Fatalf("unmarshal status failed: %v", err)
	}
	if status.Step != constants.CheckoutStepForm {
		t.Fatalf("step after reset want form got %s", status.Step)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health status want 200 got %d", w.Code)
	}
}
