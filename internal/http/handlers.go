package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/patel24vivek/billing-system/internal/domain"
	"github.com/patel24vivek/billing-system/internal/repository"
	"github.com/patel24vivek/billing-system/internal/service"
)

type Server struct {
	engine   *gin.Engine
	products *service.ProductService
	cart     *service.CartService
	checkout *service.CheckoutService
	reports  *service.ReportService
	settings *service.SettingsService
}

func NewServer(
	products *service.ProductService,
	cart *service.CartService,
	checkout *service.CheckoutService,
	reports *service.ReportService,
	settings *service.SettingsService,
) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		engine:   r,
		products: products,
		cart:     cart,
		checkout: checkout,
		reports:  reports,
		settings: settings,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.POST("", s.createProduct)
		products.GET(":id", s.getProduct)
		products.PUT(":id", s.updateProduct)
		products.DELETE(":id", s.deleteProduct)
		products.GET("", s.listProducts)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.POST("/lines", s.addCartLine)
		cart.PUT("/lines/:id", s.setCartQuantity)
		cart.DELETE("/lines/:id", s.removeCartLine)
		cart.DELETE("", s.clearCart)

		v1.POST("/checkout", s.checkoutCart)
		v1.GET("/transactions", s.listTransactions)
		v1.GET("/reports/summary", s.reportSummary)

		v1.GET("/settings", s.getSettings)
		v1.PUT("/settings", s.updateSettings)
	}
}

// Product handlers
type productReq struct {
	Name     string  `json:"name"`
	Barcode  string  `json:"barcode"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int64   `json:"stock"`
	Unit     string  `json:"unit"`
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Create(c, domain.Product{
		Name:     req.Name,
		Barcode:  req.Barcode,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
		Unit:     req.Unit,
	})
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body productReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.products.Update(c, domain.Product{
		ID:       c.Param("id"),
		Name:     req.Name,
		Barcode:  req.Barcode,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
		Unit:     req.Unit,
	})
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name, category or barcode contains"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.List(c, repository.ProductFilter{Query: c.Query("q")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Cart handlers
type cartView struct {
	Items    []domain.CartLine `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Tax      float64           `json:"tax"`
	Total    float64           `json:"total"`
}

func (s *Server) cartView() cartView {
	rate := s.settings.TaxRate()
	return cartView{
		Items:    s.cart.Lines(),
		Subtotal: s.cart.Subtotal(),
		Tax:      s.cart.Tax(rate),
		Total:    s.cart.Total(rate),
	}
}

// @Summary Current cart with derived totals
// @Tags cart
// @Produce json
// @Success 200 {object} cartView
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, s.cartView())
}

type addCartLineReq struct {
	ProductID string `json:"productId"`
}

// @Summary Add one unit of a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Param input body addCartLineReq true "Line"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/lines [post]
func (s *Server) addCartLine(c *gin.Context) {
	var req addCartLineReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// over-stock requests are silent no-ops, the response just shows
	// the unchanged cart
	if err := s.cart.AddLine(c, req.ProductID); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.cartView())
}

type setQuantityReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Set a cart line quantity (0 removes the line)
// @Tags cart
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body setQuantityReq true "Quantity"
// @Success 200 {object} cartView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/lines/{id} [put]
func (s *Server) setCartQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.cart.SetQuantity(c, c.Param("id"), req.Quantity); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.cartView())
}

// @Summary Remove a cart line
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} cartView
// @Router /cart/lines/{id} [delete]
func (s *Server) removeCartLine(c *gin.Context) {
	s.cart.RemoveLine(c.Param("id"))
	c.JSON(http.StatusOK, s.cartView())
}

// @Summary Clear the cart
// @Tags cart
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	s.cart.Clear()
	c.Status(http.StatusNoContent)
}

// Checkout handler
type checkoutReq struct {
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	CustomerName  string               `json:"customerName"`
}

// @Summary Finalize the cart into a transaction
// @Tags checkout
// @Accept json
// @Produce json
// @Param input body checkoutReq true "Payment"
// @Success 201 {object} domain.Transaction
// @Success 204 "Empty cart, nothing recorded"
// @Failure 400 {object} map[string]string
// @Router /checkout [post]
func (s *Server) checkoutCart(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	t, err := s.checkout.Finalize(c, req.PaymentMethod, req.CustomerName)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	if t == nil {
		// empty cart is a no-op, not an error
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary Transaction history
// @Tags transactions
// @Produce json
// @Param q query string false "Customer name or transaction id contains"
// @Param payment query string false "Payment method or all"
// @Param date query string false "Exact date YYYY-MM-DD"
// @Success 200 {object} service.HistoryPage
// @Router /transactions [get]
func (s *Server) listTransactions(c *gin.Context) {
	page, err := s.reports.History(c, service.HistoryFilter{
		Query:   c.Query("q"),
		Payment: c.Query("payment"),
		Date:    c.Query("date"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary Sales report for a period
// @Tags reports
// @Produce json
// @Param period query string false "today, week, month or all"
// @Success 200 {object} service.ReportSummary
// @Failure 400 {object} map[string]string
// @Router /reports/summary [get]
func (s *Server) reportSummary(c *gin.Context) {
	period := service.Period(c.DefaultQuery("period", string(service.PeriodToday)))
	switch period {
	case service.PeriodToday, service.PeriodWeek, service.PeriodMonth, service.PeriodAll:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period"})
		return
	}
	summary, err := s.reports.Summary(c, period, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Settings handlers

// @Summary Shop settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Settings
// @Router /settings [get]
func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.settings.Current())
}

// @Summary Replace shop settings
// @Tags settings
// @Accept json
// @Produce json
// @Param input body domain.Settings true "Settings"
// @Success 200 {object} domain.Settings
// @Failure 400 {object} map[string]string
// @Router /settings [put]
func (s *Server) updateSettings(c *gin.Context) {
	var req domain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.settings.Update(req); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.settings.Current())
}

func mapErrorToStatus(err error) int {
	switch err {
	case service.ErrInvalidInput:
		return http.StatusBadRequest
	case repository.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
