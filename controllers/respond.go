package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/levomgrup/sales-api/services"
	"github.com/levomgrup/sales-api/utils"
	"github.com/sirupsen/logrus"
)

// respondWithServiceError maps a service error onto the HTTP status codes of
// the API. Anything that is not a *services.Error is logged and reported as a
// generic server error.
func respondWithServiceError(c *gin.Context, log *logrus.Logger, err error) {
	var serviceErr *services.Error
	if !errors.As(err, &serviceErr) {
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled error")
		utils.RespondWithError(c, http.StatusInternalServerError, services.MsgServerError)
		return
	}

	switch serviceErr.Kind {
	case services.KindValidation:
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, serviceErr.Message, serviceErr.Errors)
	case services.KindConflict, services.KindInvalidArgument:
		utils.RespondWithError(c, http.StatusBadRequest, serviceErr.Message)
	case services.KindNotFound:
		utils.RespondWithError(c, http.StatusNotFound, serviceErr.Message)
	default:
		log.WithError(serviceErr).WithField("path", c.Request.URL.Path).Error("Internal error")
		utils.RespondWithError(c, http.StatusInternalServerError, services.MsgServerError)
	}
}

// bindJSON decodes the request body and answers 400 when it is malformed.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, services.MsgInvalidData, []string{decodeErrorMessage(err)})
		return false
	}
	return true
}

// decodeErrorMessage turns a JSON decoding error into a message for the
// client. Decoder text names Go types, so it is never sent as is.
func decodeErrorMessage(err error) string {
	var (
		dateErr  *utils.DateError
		parseErr *time.ParseError
		typeErr  *json.UnmarshalTypeError
	)
	switch {
	case errors.As(err, &dateErr), errors.As(err, &parseErr):
		return services.MsgInvalidDate
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Sprintf(services.MsgInvalidField, typeErr.Field)
	default:
		return services.MsgMalformedBody
	}
}
