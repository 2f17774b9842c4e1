// Package api поднимает HTTP-поверхность CRM поверх сервисного слоя.
//
// Бизнес-отказы мутаций отдаются со статусом 200 и непустым полем errors —
// ошибки-как-данные; HTTP-статусы зарезервированы за транспортными
// проблемами (битый JSON — 400) и инфраструктурными сбоями (500).
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/service/crm"
)

// Server — HTTP-сервер CRM API.
type Server struct {
	engine *gin.Engine
	svc    *crm.Service
	logger *log.Entry
}

// NewServer создаёт сервер с маршрутами CRM.
func NewServer(svc *crm.Service, logger *log.Entry) *Server {
	if logger == nil {
		logger = log.WithField("component", "api")
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(logger), gin.Recovery())

	s := &Server{
		engine: engine,
		svc:    svc,
		logger: logger,
	}
	s.registerRoutes()
	return s
}

// Engine возвращает внутренний gin.Engine; используется в тестах и при
// монтировании сервера.
func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	group := s.engine.Group("/crm")
	{
		group.POST("/customers", s.createCustomer)
		group.POST("/customers/bulk", s.bulkCreateCustomers)
		group.POST("/products", s.createProduct)
		group.POST("/orders", s.createOrder)

		group.GET("/customers", s.listCustomers)
		group.GET("/products", s.listProducts)
		group.GET("/orders", s.listOrders)
	}
}

func (s *Server) createCustomer(c *gin.Context) {
	var input crm.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	result, err := s.svc.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) bulkCreateCustomers(c *gin.Context) {
	var inputs []crm.CustomerInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	result, err := s.svc.BulkCreateCustomers(c.Request.Context(), inputs)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) createProduct(c *gin.Context) {
	var input crm.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	result, err := s.svc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) createOrder(c *gin.Context) {
	var input crm.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	result, err := s.svc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.svc.AllCustomers(c.Request.Context(), c.Query("orderBy"))
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.svc.AllProducts(c.Request.Context(), c.Query("orderBy"))
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.svc.AllOrders(c.Request.Context(), c.Query("orderBy"))
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
