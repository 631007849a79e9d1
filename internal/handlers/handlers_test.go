// internal/handlers/handlers_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/woocom/woocom-backend/internal/config"
	"github.com/woocom/woocom-backend/internal/i18n"
	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/services"
	"github.com/woocom/woocom-backend/internal/utils"
)

type HandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(i18n.Initialize())

	name := strings.ReplaceAll(s.T().Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.T().Cleanup(func() { sqlDB.Close() })

	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.RatingBucket{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartAddress{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	s.db = db

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 6},
	}
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	userService := services.NewUserService(db, cfg)
	productService := services.NewProductService(db)
	cartService := services.NewCartService(db)
	ledgerService := services.NewLedgerService(db)
	orderService := services.NewOrderService(db, productService, ledgerService)
	reviewService := services.NewReviewService(db, productService)

	authHandler := NewAuthHandler(userService)
	productHandler := NewProductHandler(productService, cartService)
	cartHandler := NewCartHandler(cartService)
	orderHandler := NewOrderHandler(orderService)
	reviewHandler := NewReviewHandler(reviewService)

	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.PUT("/auth/user/:email", authHandler.UpsertUser)
		v1.GET("/auth/role/:email", authHandler.FetchRole)

		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/count", productHandler.CountProducts)
		v1.GET("/products/:id", productHandler.GetProduct)
		v1.GET("/products/:id/cart/:email", productHandler.GetProductWithCartStatus)
		v1.POST("/products", productHandler.CreateProduct)
		v1.PUT("/products/:id", productHandler.UpdateProduct)

		v1.GET("/cart/:email", cartHandler.GetCart)
		v1.PUT("/cart/:email", cartHandler.AddLineItem)
		v1.POST("/cart/:email/address", cartHandler.AddAddress)
		v1.PUT("/cart/:email/address/select", cartHandler.SelectAddress)

		v1.POST("/orders/:email", orderHandler.PlaceOrder)
		v1.GET("/orders/:email", orderHandler.ListOrdersByUser)
		v1.PUT("/orders/:status/:email/:orderId", orderHandler.TransitionStatus)

		v1.PUT("/reviews/:email", reviewHandler.SubmitReview)
		v1.GET("/reviews", reviewHandler.ListReviews)
	}
	s.router = r
}

func (s *HandlerTestSuite) request(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (s *HandlerTestSuite) createProduct(available int) string {
	w := s.request("POST", "/v1/products", gin.H{
		"title":     "Mechanical Keyboard",
		"category":  "electronics",
		"price":     49.90,
		"available": available,
		"seller":    "seller@example.com",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	resp := s.decode(w)
	data := resp["data"].(map[string]interface{})
	product := data["product"].(map[string]interface{})
	return product["id"].(string)
}

func (s *HandlerTestSuite) TestUpsertUserIssuesToken() {
	w := s.request("PUT", "/v1/auth/user/buyer@example.com", nil)
	s.Equal(http.StatusOK, w.Code, w.Body.String())

	resp := s.decode(w)
	s.True(resp["success"].(bool))

	data := resp["data"].(map[string]interface{})
	s.NotEmpty(data["token"])

	w = s.request("GET", "/v1/auth/role/buyer@example.com", nil)
	s.Equal(http.StatusOK, w.Code)

	resp = s.decode(w)
	data = resp["data"].(map[string]interface{})
	s.Equal("user", data["role"])
}

func (s *HandlerTestSuite) TestFetchRoleUnknownUser() {
	w := s.request("GET", "/v1/auth/role/nobody@example.com", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlerTestSuite) TestCreateProductValidation() {
	w := s.request("POST", "/v1/products", gin.H{"title": "No"})
	s.Equal(http.StatusBadRequest, w.Code)

	resp := s.decode(w)
	s.False(resp["success"].(bool))
}

func (s *HandlerTestSuite) TestProductRatingShape() {
	id := s.createProduct(3)

	w := s.request("GET", "/v1/products/"+id, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	resp := s.decode(w)
	product := resp["data"].(map[string]interface{})
	s.Equal("in", product["stock"])

	rating := product["rating"].([]interface{})
	s.Require().Len(rating, 5)
	first := rating[0].(map[string]interface{})
	s.Equal(float64(5), first["weight"])
}

func (s *HandlerTestSuite) TestAddToCartFlow() {
	id := s.createProduct(3)

	body := gin.H{
		"product_id": id,
		"quantity":   1,
		"price":      49.90,
		"stock":      "in",
		"available":  3,
	}

	w := s.request("PUT", "/v1/cart/buyer@example.com", body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// Second add of the same product reports the duplicate.
	w = s.request("PUT", "/v1/cart/buyer@example.com", body)
	s.Require().Equal(http.StatusOK, w.Code)
	resp := s.decode(w)
	s.Equal("Product Has Already In Your Cart", resp["message"])

	// The product view reflects cart membership.
	w = s.request("GET", "/v1/products/"+id+"/cart/buyer@example.com", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	resp = s.decode(w)
	data := resp["data"].(map[string]interface{})
	s.True(data["cardHandler"].(bool))
}

func (s *HandlerTestSuite) TestAddOutOfStockProduct() {
	w := s.request("PUT", "/v1/cart/buyer@example.com", gin.H{
		"product_id": "prod-1",
		"quantity":   1,
		"stock":      "out",
		"available":  0,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := s.decode(w)
	s.Contains(resp["message"], "out of stock")
}

func (s *HandlerTestSuite) TestSelectAddress() {
	for _, id := range []int{100, 200} {
		w := s.request("POST", "/v1/cart/buyer@example.com/address", gin.H{
			"addressId": id,
			"name":      "Alex",
			"address":   "1 Main St",
		})
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	}

	w := s.request("PUT", "/v1/cart/buyer@example.com/address/select", gin.H{"addressId": 200})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := s.decode(w)
	cart := resp["data"].(map[string]interface{})
	addresses := cart["address"].([]interface{})
	s.Require().Len(addresses, 2)

	selected := 0
	for _, a := range addresses {
		addr := a.(map[string]interface{})
		if addr["select_address"].(bool) {
			selected++
			s.Equal(float64(200), addr["addressId"])
		}
	}
	s.Equal(1, selected)
}

func (s *HandlerTestSuite) TestOrderLifecycle() {
	id := s.createProduct(5)
	s.Require().NoError(s.db.Create(&models.User{Email: "owner@woocom.shop", Role: models.UserRoleOwner}).Error)
	s.Require().NoError(s.db.Create(&models.User{Email: "seller@example.com", Role: models.UserRoleSeller}).Error)

	w := s.request("POST", "/v1/orders/buyer@example.com", gin.H{
		"orderId": 1001,
		"seller":  "seller@example.com",
		"product": []gin.H{
			{"product_id": id, "quantity": 2, "price": 49.90, "price_total": 99.80},
		},
		"price_total": 99.80,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request("PUT", "/v1/orders/shipped/buyer@example.com/1001", gin.H{
		"ownerCommission": "4.99",
		"totalEarn":       "94.81",
		"seller_email":    "seller@example.com",
		"productId":       id,
		"quantity":        2,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	resp := s.decode(w)
	order := resp["data"].(map[string]interface{})
	s.Equal("shipped", order["status"])

	// Shipping decremented inventory.
	w = s.request("GET", "/v1/products/"+id, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	resp = s.decode(w)
	product := resp["data"].(map[string]interface{})
	s.Equal(float64(3), product["available"])
	s.Equal(float64(2), product["top_sell"])

	// A shipped order cannot be canceled.
	w = s.request("PUT", "/v1/orders/canceled/buyer@example.com/1001", gin.H{
		"cancel_reason": "too late",
	})
	s.Equal(http.StatusConflict, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestPlaceEmptyOrder() {
	w := s.request("POST", "/v1/orders/buyer@example.com", gin.H{
		"orderId": 1001,
		"seller":  "seller@example.com",
		"product": []gin.H{},
	})
	s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
}

func (s *HandlerTestSuite) TestSubmitReview() {
	id := s.createProduct(3)

	body := gin.H{
		"rating_id":    "r-1",
		"product_id":   id,
		"rating_point": 4,
		"comment":      "solid build",
	}

	w := s.request("PUT", "/v1/reviews/buyer@example.com", body)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// Duplicate submission is acknowledged without a second vote.
	w = s.request("PUT", "/v1/reviews/buyer@example.com", body)
	s.Require().Equal(http.StatusOK, w.Code)
	resp := s.decode(w)
	s.Contains(resp["message"], "already reviewed")

	w = s.request("GET", "/v1/reviews?user=buyer@example.com", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	resp = s.decode(w)
	reviews := resp["data"].([]interface{})
	s.Len(reviews, 1)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
