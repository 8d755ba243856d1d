package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
)

func TestWriteErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.NewValidation("email", "must be a valid email"), http.StatusBadRequest},
		{"conflict", errs.NewConflict(errs.EntityAccount, "email"), http.StatusConflict},
		{"stale", fmt.Errorf("update: %w", errs.NewStale(errs.EntityAccount, "a-1")), http.StatusConflict},
		{"not found", errs.NewNotFound(errs.EntityProduct, "p-1"), http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			writeError(c, nil, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
