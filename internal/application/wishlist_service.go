package application

import (
	"context"
	"iter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/entity"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/event"
	repo "github.com/oksasatya/go-ddd-account-wishlist/internal/domain/repository"
)

type WishlistService struct {
	Repo     repo.WishlistRepository
	Accounts repo.AccountRepository
	Catalog  repo.ProductCatalog
	Events   event.Publisher
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewWishlistService(r repo.WishlistRepository, accounts repo.AccountRepository, catalog repo.ProductCatalog, events event.Publisher, logger *logrus.Logger) *WishlistService {
	return &WishlistService{
		Repo:     r,
		Accounts: accounts,
		Catalog:  catalog,
		Events:   events,
		Logger:   logger,
		Now:      now,
	}
}

// AddToWishlist records the pair. Adding an existing pair is rejected with a
// ConflictError rather than merged.
func (s *WishlistService) AddToWishlist(ctx context.Context, accountID, productID string) (*entity.WishlistEntry, error) {
	if productID == "" {
		return nil, errs.NewValidation("product_id", "is required")
	}
	if _, err := s.Accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	ok, err := s.Catalog.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewNotFound(errs.EntityProduct, productID)
	}

	e := &entity.WishlistEntry{AccountID: accountID, ProductID: productID, CreatedAt: s.Now()}
	if err := s.Repo.Add(ctx, e); err != nil {
		return nil, err
	}
	s.log().WithFields(logrus.Fields{"account_id": accountID, "product_id": productID}).Info("wishlist entry added")
	s.publish(ctx, event.Event{Type: event.WishlistAdded, AccountID: accountID, ProductID: productID})
	return e, nil
}

func (s *WishlistService) RemoveFromWishlist(ctx context.Context, accountID, productID string) error {
	if err := s.Repo.Remove(ctx, accountID, productID); err != nil {
		return err
	}
	s.log().WithFields(logrus.Fields{"account_id": accountID, "product_id": productID}).Info("wishlist entry removed")
	s.publish(ctx, event.Event{Type: event.WishlistRemoved, AccountID: accountID, ProductID: productID})
	return nil
}

// ListWishlist returns a lazy sequence of the account's entries. An unknown
// account yields nothing. Order is unspecified.
func (s *WishlistService) ListWishlist(ctx context.Context, accountID string) iter.Seq2[*entity.WishlistEntry, error] {
	return s.Repo.List(ctx, accountID)
}

func (s *WishlistService) CountWishlist(ctx context.Context, accountID string) (int, error) {
	return s.Repo.Count(ctx, accountID)
}

// RemoveProductEverywhere applies the catalogue's product deletion to every wishlist.
func (s *WishlistService) RemoveProductEverywhere(ctx context.Context, productID string) (int, error) {
	if productID == "" {
		return 0, errs.NewValidation("product_id", "is required")
	}
	n, err := s.Repo.RemoveByProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	s.log().WithFields(logrus.Fields{"product_id": productID, "removed": n}).Info("product removed from wishlists")
	return n, nil
}

func (s *WishlistService) publish(ctx context.Context, e event.Event) {
	if s.Events == nil {
		return
	}
	e.OccurredAt = s.Now()
	if err := s.Events.Publish(ctx, e); err != nil {
		s.log().WithError(err).WithField("event", e.Type).Warn("event publish failed")
	}
}

func (s *WishlistService) log() *logrus.Logger { return loggerOrDiscard(s.Logger) }
