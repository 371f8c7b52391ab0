package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/cart/internal/adapters/http/handlers"
	"github.com/rafaelleal24/cart/internal/core/domain"
	"github.com/rafaelleal24/cart/internal/core/service"
	"github.com/rafaelleal24/cart/internal/core/serviceerrors"
)

const defaultKeepAlive = 15 * time.Second

type CartController struct {
	cart      *service.NotifyingCart
	hub       *service.NotificationHub
	keepAlive time.Duration
}

type CartResponse struct {
	Items      []domain.Product `json:"items"`
	TotalItems int              `json:"total_items"`
}

type NotificationResponse struct {
	Message string `json:"message"`
}

type AddProductRequest struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
}

type UpdateAmountRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

func NewCartResponse(cart domain.Cart) CartResponse {
	items := []domain.Product(cart)
	if items == nil {
		items = []domain.Product{}
	}
	return CartResponse{Items: items, TotalItems: cart.TotalItems()}
}

func NewCartController(cart *service.NotifyingCart, hub *service.NotificationHub) *CartController {
	return &CartController{cart: cart, hub: hub, keepAlive: defaultKeepAlive}
}

func productIDParam(c *gin.Context) (domain.ProductID, bool) {
	id, ok := domain.ParseProductID(c.Param("id"))
	if !ok {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError("Invalid product ID"))
	}
	return id, ok
}

// GetCart godoc
// @Summary     Get the cart
// @Description Returns the current cart items in insertion order
// @Tags        cart
// @Produce     json
// @Success     200 {object} CartResponse
// @Router      /api/v1/cart [get]
func (cc *CartController) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, NewCartResponse(cc.cart.Cart()))
}

// AddProduct godoc
// @Summary     Add a product
// @Description Adds a product with amount 1, or increments it when already in the cart
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       request body     AddProductRequest true "Product to add"
// @Success     200     {object} CartResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Failure     502     {object} handlers.ErrorResponse
// @Router      /api/v1/cart/items [post]
func (cc *CartController) AddProduct(c *gin.Context) {
	var request AddProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	if err := cc.cart.AddProduct(c.Request.Context(), domain.ProductID(request.ProductID)); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCartResponse(cc.cart.Cart()))
}

// UpdateProductAmount godoc
// @Summary     Set a product amount
// @Description Sets the amount of a product in the cart; amounts below 1 are ignored
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       id      path     int                 true "Product ID"
// @Param       request body     UpdateAmountRequest true "New amount"
// @Success     200     {object} CartResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Failure     409     {object} handlers.ErrorResponse
// @Failure     429     {object} handlers.ErrorResponse
// @Router      /api/v1/cart/items/{id} [patch]
func (cc *CartController) UpdateProductAmount(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	var request UpdateAmountRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	if err := cc.cart.UpdateProductAmount(c.Request.Context(), productID, *request.Amount); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCartResponse(cc.cart.Cart()))
}

// RemoveProduct godoc
// @Summary     Remove a product
// @Description Removes a product from the cart
// @Tags        cart
// @Produce     json
// @Param       id  path     int true "Product ID"
// @Success     200 {object} CartResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     429 {object} handlers.ErrorResponse
// @Router      /api/v1/cart/items/{id} [delete]
func (cc *CartController) RemoveProduct(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}
	if err := cc.cart.RemoveProduct(c.Request.Context(), productID); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewCartResponse(cc.cart.Cart()))
}

// Events godoc
// @Summary     Stream cart changes
// @Description Server-sent events: "cart" on connect and after every change, "notification" for user messages
// @Tags        cart
// @Produce     text/event-stream
// @Success     200
// @Router      /api/v1/cart/events [get]
func (cc *CartController) Events(c *gin.Context) {
	ctx := c.Request.Context()
	updates := make(chan domain.Cart, 1)
	messages := make(chan string, 16)

	unsubscribe := cc.cart.Subscribe(func(cart domain.Cart) { offerLatest(updates, cart) })
	defer unsubscribe()
	stop := cc.hub.Listen(func(message string) {
		select {
		case messages <- message:
		default:
		}
	})
	defer stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("cart", NewCartResponse(cc.cart.Cart()))
	c.Writer.Flush()

	ticker := time.NewTicker(cc.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case cart := <-updates:
			c.SSEvent("cart", NewCartResponse(cart))
		case message := <-messages:
			c.SSEvent("notification", NotificationResponse{Message: message})
		case <-ticker.C:
			_, _ = fmt.Fprint(c.Writer, ": keepalive\n\n")
		}
		c.Writer.Flush()
	}
}

// offerLatest keeps only the newest cart in ch, replacing one not yet sent.
func offerLatest(ch chan domain.Cart, cart domain.Cart) {
	for {
		select {
		case ch <- cart:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
