package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/auth"
	"github.com/yourname/fitplanner/internal/response"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg)
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

// HandleServiceError maps service errors to a status and responds.
func HandleServiceError(c *gin.Context, logger internal.Logger, err error, msg string) {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, internal.ErrInvalidProfile), errors.As(err, &verrs):
		HandleError(c, logger, err, http.StatusBadRequest, msg)
	case errors.Is(err, internal.ErrNotFound):
		HandleError(c, logger, err, http.StatusNotFound, msg)
	default:
		HandleError(c, logger, err, http.StatusInternalServerError, msg)
	}
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Debugf("[request_id=%s] Success", requestID)
	c.JSON(http.StatusOK, response.Success(data, meta))
}

func HandleCreated(c *gin.Context, logger internal.Logger, data interface{}) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Created", requestID)
	c.JSON(http.StatusCreated, response.Success(data, nil))
}

func currentUser(c *gin.Context) *internal.User {
	return c.MustGet(auth.UserKey).(*internal.User)
}
