// controllers/customer.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levomgrup/sales-api/services"
	"github.com/sirupsen/logrus"
)

type CustomerController struct {
	Customers *services.CustomerService
	Log       *logrus.Logger
}

// CreateCustomer creates a new customer
func (ctl *CustomerController) CreateCustomer(c *gin.Context) {
	var input services.CreateCustomerInput
	if !bindJSON(c, &input) {
		return
	}

	customer, err := ctl.Customers.Create(c.Request.Context(), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers returns all active customers
func (ctl *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := ctl.Customers.List(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (ctl *CustomerController) GetCustomer(c *gin.Context) {
	customer, err := ctl.Customers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer applies a partial update to an active customer
func (ctl *CustomerController) UpdateCustomer(c *gin.Context) {
	var input services.UpdateCustomerInput
	if !bindJSON(c, &input) {
		return
	}

	customer, err := ctl.Customers.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft-deletes a customer
func (ctl *CustomerController) DeleteCustomer(c *gin.Context) {
	if err := ctl.Customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": services.MsgCustomerDeleted})
}
