package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"loan-portal/internal/adapter/remote"
	"loan-portal/internal/domain/validation"
)

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

// respondError maps use case errors to HTTP. Remote 4xx answers keep their
// status; anything else from the API becomes 502.
func respondError(c echo.Context, err error) error {
	var ve *validation.Error
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, fromDomain(ve))
	}

	var re *remote.Error
	if errors.As(err, &re) {
		code := http.StatusBadGateway
		if re.StatusCode >= 400 && re.StatusCode < 500 {
			code = re.StatusCode
		}
		logrus.WithFields(logrus.Fields{
			"op":     re.Op,
			"status": re.StatusCode,
			"cause":  re.Err,
		}).Warn("remote call failed")
		return c.JSON(code, ErrorResponse{Error: re.Message})
	}

	logrus.WithFields(logrus.Fields{"path": c.Path(), "error": err}).Error("request failed")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
