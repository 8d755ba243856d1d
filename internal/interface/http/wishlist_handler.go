package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/application"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/response"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/validation"
)

type WishlistHandler struct {
	Svc    *application.WishlistService
	Logger *logrus.Logger
}

func NewWishlistHandler(svc *application.WishlistService, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{Svc: svc, Logger: logger}
}

type addWishlistRequest struct {
	ProductID string `json:"product_id"`
}

type wishlistEntryResponse struct {
	AccountID string    `json:"account_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

func presentEntry(e *entity.WishlistEntry) wishlistEntryResponse {
	return wishlistEntryResponse{AccountID: e.AccountID, ProductID: e.ProductID, CreatedAt: e.CreatedAt}
}

func (h *WishlistHandler) List(c *gin.Context) {
	out := make([]wishlistEntryResponse, 0)
	for e, err := range h.Svc.ListWishlist(c.Request.Context(), c.Param("id")) {
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		out = append(out, presentEntry(e))
	}
	response.Success(c, http.StatusOK, out, "wishlist", map[string]any{"count": len(out)})
}

func (h *WishlistHandler) Add(c *gin.Context) {
	var req addWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.AddToWishlist(c.Request.Context(), c.Param("id"), req.ProductID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, presentEntry(e), "added to wishlist", nil)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	if err := h.Svc.RemoveFromWishlist(c.Request.Context(), c.Param("id"), c.Param("productID")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"removed": true}, "removed from wishlist", nil)
}

// RemoveProduct is called by the catalogue when a product is deleted.
func (h *WishlistHandler) RemoveProduct(c *gin.Context) {
	n, err := h.Svc.RemoveProductEverywhere(c.Request.Context(), c.Param("productID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"removed": n}, "product removed from wishlists", nil)
}
