package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/cart/internal/core/serviceerrors"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleError writes only the user facing message; causes stay in the logs.
func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		c.JSON(mapKindToHTTP(svcErr.Kind), ErrorResponse{Error: svcErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindStockExceeded:
		return http.StatusConflict
	case serviceerrors.KindAddFailed:
		return http.StatusBadGateway
	case serviceerrors.KindRemoveFailed, serviceerrors.KindUpdateFailed:
		return http.StatusNotFound
	case serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
