package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/event"
	repo "github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/helpers"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/validation"
)

// AccountService owns account records. Images, Search and Events are optional
// collaborators; a nil value disables the corresponding side effect.
type AccountService struct {
	Repo   repo.AccountRepository
	Images repo.ImageStore
	Search repo.AccountSearch
	Events event.Publisher
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewAccountService(r repo.AccountRepository, images repo.ImageStore, search repo.AccountSearch, events event.Publisher, logger *logrus.Logger) *AccountService {
	return &AccountService{
		Repo:   r,
		Images: images,
		Search: search,
		Events: events,
		Logger: logger,
		Now:    now,
	}
}

// now truncates to microseconds, the precision Postgres keeps.
func now() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// accountRules carries the field constraints shared by create and update.
type accountRules struct {
	Username        string `json:"username" validate:"required,max=150"`
	Email           string `json:"email" validate:"required,email,max=254"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" validate:"max=150"`
	PhoneNumber     string `json:"phone_number" validate:"omitempty,phone"`
	AddressLine1    string `json:"address_line_1" validate:"max=255"`
	AddressLine2    string `json:"address_line_2" validate:"max=255"`
	City            string `json:"city" validate:"max=100"`
	State           string `json:"state" validate:"max=100"`
	PostalCode      string `json:"postal_code" validate:"max=20"`
	Country         string `json:"country" validate:"max=100"`
	ProfileImageRef string `json:"profile_image_ref" validate:"max=255"`
}

func rulesFor(a *entity.Account) accountRules {
	return accountRules{
		Username:        a.Username,
		Email:           a.Email,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		PhoneNumber:     a.PhoneNumber,
		AddressLine1:    a.AddressLine1,
		AddressLine2:    a.AddressLine2,
		City:            a.City,
		State:           a.State,
		PostalCode:      a.PostalCode,
		Country:         a.Country,
		ProfileImageRef: a.ProfileImageRef,
	}
}

type CreateAccountInput struct {
	Username        string
	Email           string
	Password        string
	FirstName       string
	LastName        string
	PhoneNumber     string
	DateOfBirth     *time.Time
	AddressLine1    string
	AddressLine2    string
	City            string
	State           string
	PostalCode      string
	Country         string
	ProfileImageRef string
	// Newsletter defaults to subscribed when nil.
	Newsletter *bool
}

// UpdateAccountInput holds a partial update: only present options are applied.
// DateOfBirth set to Some(nil) clears the stored date.
type UpdateAccountInput struct {
	Username               mo.Option[string]
	Email                  mo.Option[string]
	Password               mo.Option[string]
	FirstName              mo.Option[string]
	LastName               mo.Option[string]
	PhoneNumber            mo.Option[string]
	DateOfBirth            mo.Option[*time.Time]
	AddressLine1           mo.Option[string]
	AddressLine2           mo.Option[string]
	City                   mo.Option[string]
	State                  mo.Option[string]
	PostalCode             mo.Option[string]
	Country                mo.Option[string]
	ProfileImageRef        mo.Option[string]
	IsVerified             mo.Option[bool]
	NewsletterSubscription mo.Option[bool]
}

// CreateAccount validates the input, hashes the password and stores a new account.
func (s *AccountService) CreateAccount(ctx context.Context, in CreateAccountInput) (*entity.Account, error) {
	a := entity.NewAccount(in.Username, entity.NormalizeEmail(in.Email))
	a.FirstName = in.FirstName
	a.LastName = in.LastName
	a.PhoneNumber = in.PhoneNumber
	a.DateOfBirth = dateOnly(in.DateOfBirth)
	a.AddressLine1 = in.AddressLine1
	a.AddressLine2 = in.AddressLine2
	a.City = in.City
	a.State = in.State
	a.PostalCode = in.PostalCode
	a.Country = in.Country
	a.ProfileImageRef = in.ProfileImageRef
	if in.Newsletter != nil {
		a.NewsletterSubscription = *in.Newsletter
	}

	details := validation.Check(rulesFor(a))
	details = mergeDetails(details, validation.CheckVar("password", in.Password, "required,pwd"))
	details = mergeDetails(details, s.checkDateOfBirth(a.DateOfBirth))
	if err := validationFrom(details); err != nil {
		return nil, err
	}
	if err := s.checkImage(ctx, a.ProfileImageRef); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = hash
	a.ID = uuid.NewString()
	a.CreatedAt = s.Now()
	a.UpdatedAt = a.CreatedAt

	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log().WithFields(logrus.Fields{"account_id": a.ID, "email": a.Email}).Info("account created")

	s.index(ctx, a)
	s.publish(ctx, event.Event{
		Type:       event.AccountCreated,
		AccountID:  a.ID,
		Email:      a.Email,
		Newsletter: &a.NewsletterSubscription,
		Verified:   &a.IsVerified,
	})
	return a, nil
}

// GetAccount looks an account up by ID when key is a UUID, by email otherwise.
func (s *AccountService) GetAccount(ctx context.Context, key string) (*entity.Account, error) {
	if _, err := uuid.Parse(key); err == nil {
		return s.GetAccountByID(ctx, key)
	}
	return s.GetAccountByEmail(ctx, key)
}

func (s *AccountService) GetAccountByID(ctx context.Context, id string) (*entity.Account, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *AccountService) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return s.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
}

// updateAttempts bounds how often UpdateAccount re-reads after losing a race
// with a concurrent writer.
const updateAttempts = 3

// UpdateAccount applies the present fields and refreshes UpdatedAt. The write is
// conditional on the row being unchanged since it was read; on a stale read the
// fields are re-applied to a fresh copy.
func (s *AccountService) UpdateAccount(ctx context.Context, id string, in UpdateAccountInput) (*entity.Account, error) {
	pwd, pwdSet := in.Password.Get()
	var hash string

	for attempt := 1; ; attempt++ {
		a, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		readAt := a.UpdatedAt
		imageChanged := applyUpdate(a, in)

		details := validation.Check(rulesFor(a))
		details = mergeDetails(details, s.checkDateOfBirth(a.DateOfBirth))
		if pwdSet {
			details = mergeDetails(details, validation.CheckVar("password", pwd, "required,pwd"))
		}
		if err := validationFrom(details); err != nil {
			return nil, err
		}
		if imageChanged {
			if err := s.checkImage(ctx, a.ProfileImageRef); err != nil {
				return nil, err
			}
		}
		if pwdSet {
			if hash == "" {
				if hash, err = helpers.HashPassword(pwd); err != nil {
					return nil, err
				}
			}
			a.PasswordHash = hash
		}

		a.UpdatedAt = s.Now()
		err = s.Repo.Update(ctx, a, readAt)
		if errors.Is(err, errs.ErrStale) && attempt < updateAttempts {
			s.log().WithFields(logrus.Fields{"account_id": id, "attempt": attempt}).Debug("stale account read, retrying update")
			continue
		}
		if err != nil {
			return nil, err
		}
		s.log().WithField("account_id", a.ID).Info("account updated")

		s.index(ctx, a)
		s.publish(ctx, event.Event{
			Type:       event.AccountUpdated,
			AccountID:  a.ID,
			Email:      a.Email,
			Newsletter: &a.NewsletterSubscription,
			Verified:   &a.IsVerified,
		})
		return a, nil
	}
}

// applyUpdate copies the present fields onto a and reports whether the profile
// image reference changed.
func applyUpdate(a *entity.Account, in UpdateAccountInput) bool {
	setString(&a.Username, in.Username)
	if v, ok := in.Email.Get(); ok {
		a.Email = entity.NormalizeEmail(v)
	}
	setString(&a.FirstName, in.FirstName)
	setString(&a.LastName, in.LastName)
	setString(&a.PhoneNumber, in.PhoneNumber)
	if v, ok := in.DateOfBirth.Get(); ok {
		a.DateOfBirth = dateOnly(v)
	}
	setString(&a.AddressLine1, in.AddressLine1)
	setString(&a.AddressLine2, in.AddressLine2)
	setString(&a.City, in.City)
	setString(&a.State, in.State)
	setString(&a.PostalCode, in.PostalCode)
	setString(&a.Country, in.Country)
	if v, ok := in.IsVerified.Get(); ok {
		a.IsVerified = v
	}
	if v, ok := in.NewsletterSubscription.Get(); ok {
		a.NewsletterSubscription = v
	}
	if v, ok := in.ProfileImageRef.Get(); ok && v != a.ProfileImageRef {
		a.ProfileImageRef = v
		return true
	}
	return false
}

// DeleteAccount hard-deletes the account together with its wishlist entries.
func (s *AccountService) DeleteAccount(ctx context.Context, id string) error {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log().WithField("account_id", id).Info("account deleted")

	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			s.log().WithError(err).WithField("account_id", id).Warn("search remove failed")
		}
	}
	s.publish(ctx, event.Event{Type: event.AccountDeleted, AccountID: id, Email: a.Email})
	return nil
}

// SearchAccounts queries the search index; without one it returns no hits.
func (s *AccountService) SearchAccounts(ctx context.Context, q string, size int) ([]repo.AccountDocument, error) {
	if s.Search == nil {
		return []repo.AccountDocument{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Search.Search(ctx, q, size)
}

// ProfileImageURL resolves the account's image reference, or "" when unset.
func (s *AccountService) ProfileImageURL(a *entity.Account) string {
	if a.ProfileImageRef == "" {
		return ""
	}
	if s.Images == nil {
		return a.ProfileImageRef
	}
	return s.Images.URL(a.ProfileImageRef)
}

func (s *AccountService) checkDateOfBirth(dob *time.Time) map[string]string {
	if dob != nil && dob.After(s.Now()) {
		return map[string]string{"date_of_birth": "must not be in the future"}
	}
	return nil
}

func (s *AccountService) checkImage(ctx context.Context, ref string) error {
	if ref == "" || s.Images == nil {
		return nil
	}
	ok, err := s.Images.Exists(ctx, ref)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewValidation("profile_image_ref", "does not reference a stored image")
	}
	return nil
}

func (s *AccountService) index(ctx context.Context, a *entity.Account) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, a); err != nil {
		s.log().WithError(err).WithField("account_id", a.ID).Warn("search index failed")
	}
}

func (s *AccountService) publish(ctx context.Context, e event.Event) {
	if s.Events == nil {
		return
	}
	e.OccurredAt = s.Now()
	if err := s.Events.Publish(ctx, e); err != nil {
		s.log().WithError(err).WithField("event", e.Type).Warn("event publish failed")
	}
}

func (s *AccountService) log() *logrus.Logger { return loggerOrDiscard(s.Logger) }

// PasswordAuthenticator checks credentials against stored accounts.
// It issues no tokens or sessions.
type PasswordAuthenticator struct {
	Repo repo.AccountRepository
}

func NewPasswordAuthenticator(r repo.AccountRepository) *PasswordAuthenticator {
	return &PasswordAuthenticator{Repo: r}
}

// Authenticate returns the account whose email and password match.
func (p *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	a, err := p.Repo.GetByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// CredentialChecker is the login capability consumed by an authentication layer.
type CredentialChecker interface {
	Authenticate(ctx context.Context, email, password string) (*entity.Account, error)
}

var _ CredentialChecker = (*PasswordAuthenticator)(nil)

func setString(dst *string, o mo.Option[string]) {
	if v, ok := o.Get(); ok {
		*dst = v
	}
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
