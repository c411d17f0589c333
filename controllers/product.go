// controllers/product.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levomgrup/sales-api/services"
	"github.com/sirupsen/logrus"
)

type ProductController struct {
	Products *services.ProductService
	Log      *logrus.Logger
}

type AssignProductInput struct {
	CustomerID string `json:"customerId"`
}

// CreateProduct creates a new product
func (ctl *ProductController) CreateProduct(c *gin.Context) {
	var input services.CreateProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := ctl.Products.Create(c.Request.Context(), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (ctl *ProductController) GetProducts(c *gin.Context) {
	products, err := ctl.Products.List(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (ctl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctl.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (ctl *ProductController) UpdateProduct(c *gin.Context) {
	var input services.UpdateProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := ctl.Products.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft-deletes a product
func (ctl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctl.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": services.MsgProductDeleted})
}

// AssignProduct assigns the product to the customer in the body
func (ctl *ProductController) AssignProduct(c *gin.Context) {
	var input AssignProductInput
	if !bindJSON(c, &input) {
		return
	}

	product, err := ctl.Products.Assign(c.Request.Context(), c.Param("id"), input.CustomerID)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (ctl *ProductController) UnassignProduct(c *gin.Context) {
	product, err := ctl.Products.Unassign(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GetCustomerProducts lists the products assigned to a customer
func (ctl *ProductController) GetCustomerProducts(c *gin.Context) {
	products, err := ctl.Products.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
