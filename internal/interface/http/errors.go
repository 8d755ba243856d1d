package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/response"
)

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *errs.ValidationError
	var ce *errs.ConflictError
	var nf *errs.NotFoundError
	var se *errs.StaleError
	switch {
	case errors.As(err, &ve):
		response.Error[any](c, http.StatusBadRequest, "validation failed", ve.Fields)
	case errors.As(err, &ce):
		var details any
		if ce.Field != "" {
			details = map[string]string{ce.Field: "already taken"}
		}
		response.Error[any](c, http.StatusConflict, ce.Error(), details)
	case errors.As(err, &se):
		response.Error[any](c, http.StatusConflict, se.Error(), nil)
	case errors.As(err, &nf):
		response.Error[any](c, http.StatusNotFound, nf.Error(), nil)
	default:
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
