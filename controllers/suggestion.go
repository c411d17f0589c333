// controllers/suggestion.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/levomgrup/sales-api/services"
	"github.com/sirupsen/logrus"
)

type SuggestionController struct {
	Suggestions *services.SuggestionService
	Log         *logrus.Logger
}

// SuggestProductsToCustomer links the given products to a customer
func (ctl *SuggestionController) SuggestProductsToCustomer(c *gin.Context) {
	var input services.SuggestProductsInput
	if !bindJSON(c, &input) {
		return
	}

	suggestions, err := ctl.Suggestions.SuggestProductsToCustomer(c.Request.Context(), c.Param("customerId"), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, suggestions)
}

// SuggestCustomersToProduct links the given customers to a product
func (ctl *SuggestionController) SuggestCustomersToProduct(c *gin.Context) {
	var input services.SuggestCustomersInput
	if !bindJSON(c, &input) {
		return
	}

	suggestions, err := ctl.Suggestions.SuggestCustomersToProduct(c.Request.Context(), c.Param("productId"), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusCreated, suggestions)
}

func (ctl *SuggestionController) GetCustomerSuggestions(c *gin.Context) {
	suggestions, err := ctl.Suggestions.ForCustomer(c.Request.Context(), c.Param("customerId"), c.Query("status"))
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (ctl *SuggestionController) GetProductSuggestions(c *gin.Context) {
	suggestions, err := ctl.Suggestions.ForProduct(c.Request.Context(), c.Param("productId"), c.Query("status"))
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// UpdateSuggestionStatus accepts or rejects a pending suggestion
func (ctl *SuggestionController) UpdateSuggestionStatus(c *gin.Context) {
	var input services.ResolveSuggestionInput
	if !bindJSON(c, &input) {
		return
	}

	pair, err := ctl.Suggestions.Resolve(c.Request.Context(), c.Param("suggestionId"), input)
	if err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (ctl *SuggestionController) DeleteSuggestion(c *gin.Context) {
	if err := ctl.Suggestions.Delete(c.Request.Context(), c.Param("suggestionId")); err != nil {
		respondWithServiceError(c, ctl.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": services.MsgSuggestionDeleted})
}
