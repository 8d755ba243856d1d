package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/application"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/response"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/validation"
)

const dateLayout = "2006-01-02"

type AccountHandler struct {
	Accounts *application.AccountService
	Wishlist *application.WishlistService
	Logger   *logrus.Logger
}

func NewAccountHandler(accounts *application.AccountService, wishlist *application.WishlistService, logger *logrus.Logger) *AccountHandler {
	return &AccountHandler{Accounts: accounts, Wishlist: wishlist, Logger: logger}
}

type createAccountRequest struct {
	Username               string `json:"username"`
	Email                  string `json:"email"`
	Password               string `json:"password"`
	FirstName              string `json:"first_name"`
	LastName               string `json:"last_name"`
	PhoneNumber            string `json:"phone_number"`
	DateOfBirth            string `json:"date_of_birth"`
	AddressLine1           string `json:"address_line_1"`
	AddressLine2           string `json:"address_line_2"`
	City                   string `json:"city"`
	State                  string `json:"state"`
	PostalCode             string `json:"postal_code"`
	Country                string `json:"country"`
	ProfileImageRef        string `json:"profile_image_ref"`
	NewsletterSubscription *bool  `json:"newsletter_subscription"`
}

// updateAccountRequest uses pointers so absent fields are left untouched.
// An empty date_of_birth clears the stored date.
type updateAccountRequest struct {
	Username               *string `json:"username"`
	Email                  *string `json:"email"`
	Password               *string `json:"password"`
	FirstName              *string `json:"first_name"`
	LastName               *string `json:"last_name"`
	PhoneNumber            *string `json:"phone_number"`
	DateOfBirth            *string `json:"date_of_birth"`
	AddressLine1           *string `json:"address_line_1"`
	AddressLine2           *string `json:"address_line_2"`
	City                   *string `json:"city"`
	State                  *string `json:"state"`
	PostalCode             *string `json:"postal_code"`
	Country                *string `json:"country"`
	ProfileImageRef        *string `json:"profile_image_ref"`
	IsVerified             *bool   `json:"is_verified"`
	NewsletterSubscription *bool   `json:"newsletter_subscription"`
}

type accountResponse struct {
	ID                     string    `json:"id"`
	Username               string    `json:"username"`
	Email                  string    `json:"email"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	DisplayName            string    `json:"display_name"`
	PhoneNumber            string    `json:"phone_number"`
	DateOfBirth            *string   `json:"date_of_birth"`
	AddressLine1           string    `json:"address_line_1"`
	AddressLine2           string    `json:"address_line_2"`
	City                   string    `json:"city"`
	State                  string    `json:"state"`
	PostalCode             string    `json:"postal_code"`
	Country                string    `json:"country"`
	FullAddress            string    `json:"full_address"`
	ProfileImageRef        string    `json:"profile_image_ref"`
	ProfileImageURL        string    `json:"profile_image_url"`
	IsVerified             bool      `json:"is_verified"`
	NewsletterSubscription bool      `json:"newsletter_subscription"`
	WishlistCount          int       `json:"wishlist_count"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (h *AccountHandler) present(a *entity.Account, wishlistCount int) accountResponse {
	var dob *string
	if a.DateOfBirth != nil {
		s := a.DateOfBirth.Format(dateLayout)
		dob = &s
	}
	return accountResponse{
		ID:                     a.ID,
		Username:               a.Username,
		Email:                  a.Email,
		FirstName:              a.FirstName,
		LastName:               a.LastName,
		DisplayName:            entity.FormatDisplayName(a),
		PhoneNumber:            a.PhoneNumber,
		DateOfBirth:            dob,
		AddressLine1:           a.AddressLine1,
		AddressLine2:           a.AddressLine2,
		City:                   a.City,
		State:                  a.State,
		PostalCode:             a.PostalCode,
		Country:                a.Country,
		FullAddress:            entity.ComputeFullAddress(a),
		ProfileImageRef:        a.ProfileImageRef,
		ProfileImageURL:        h.Accounts.ProfileImageURL(a),
		IsVerified:             a.IsVerified,
		NewsletterSubscription: a.NewsletterSubscription,
		WishlistCount:          wishlistCount,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}

func (h *AccountHandler) presentWithCount(c *gin.Context, a *entity.Account) (accountResponse, error) {
	n := 0
	if h.Wishlist != nil {
		var err error
		if n, err = h.Wishlist.CountWishlist(c.Request.Context(), a.ID); err != nil {
			return accountResponse{}, err
		}
	}
	return h.present(a, n), nil
}

func parseDate(field, v string) (*time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return nil, errs.NewValidation(field, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

func (h *AccountHandler) Create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.CreateAccountInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		PhoneNumber:     req.PhoneNumber,
		AddressLine1:    req.AddressLine1,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		State:           req.State,
		PostalCode:      req.PostalCode,
		Country:         req.Country,
		ProfileImageRef: req.ProfileImageRef,
		Newsletter:      req.NewsletterSubscription,
	}
	if req.DateOfBirth != "" {
		dob, err := parseDate("date_of_birth", req.DateOfBirth)
		if err != nil {
			writeError(c, h.Logger, err)
			return
		}
		in.DateOfBirth = dob
	}

	a, err := h.Accounts.CreateAccount(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, h.present(a, 0), "account created", nil)
}

// Get resolves the path parameter as an account ID or, failing that, an email.
func (h *AccountHandler) Get(c *gin.Context) {
	a, err := h.Accounts.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out, err := h.presentWithCount(c, a)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "account", nil)
}

func (h *AccountHandler) Update(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	in := application.UpdateAccountInput{
		Username:               mo.PointerToOption(req.Username),
		Email:                  mo.PointerToOption(req.Email),
		Password:               mo.PointerToOption(req.Password),
		FirstName:              mo.PointerToOption(req.FirstName),
		LastName:               mo.PointerToOption(req.LastName),
		PhoneNumber:            mo.PointerToOption(req.PhoneNumber),
		AddressLine1:           mo.PointerToOption(req.AddressLine1),
		AddressLine2:           mo.PointerToOption(req.AddressLine2),
		City:                   mo.PointerToOption(req.City),
		State:                  mo.PointerToOption(req.State),
		PostalCode:             mo.PointerToOption(req.PostalCode),
		Country:                mo.PointerToOption(req.Country),
		ProfileImageRef:        mo.PointerToOption(req.ProfileImageRef),
		IsVerified:             mo.PointerToOption(req.IsVerified),
		NewsletterSubscription: mo.PointerToOption(req.NewsletterSubscription),
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			in.DateOfBirth = mo.Some[*time.Time](nil)
		} else {
			dob, err := parseDate("date_of_birth", *req.DateOfBirth)
			if err != nil {
				writeError(c, h.Logger, err)
				return
			}
			in.DateOfBirth = mo.Some(dob)
		}
	}

	a, err := h.Accounts.UpdateAccount(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	out, err := h.presentWithCount(c, a)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, out, "account updated", nil)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	if err := h.Accounts.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "account deleted", nil)
}

func (h *AccountHandler) Search(c *gin.Context) {
	size := 0
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, h.Logger, errs.NewValidation("size", "must be an integer"))
			return
		}
		size = n
	}
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		writeError(c, h.Logger, errs.NewValidation("q", "is required"))
		return
	}
	docs, err := h.Accounts.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "search results", map[string]any{"count": len(docs)})
}
