// Package services contains the application services behind the HTTP layer.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthapp/pkg/apperr"
	"healthapp/pkg/events"
	"healthapp/pkg/models"
	"healthapp/pkg/password"
	"healthapp/pkg/repository"
	"healthapp/pkg/storage"
)

// AccountCache caches public account views between store reads.
// *cache.Redis satisfies it; tests pass nil.
type AccountCache interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
}

// AccountService enforces the identity invariants: unique username and
// phone, non-empty password hash, uniform bad-credentials errors.
type AccountService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.Account, error)
	Authenticate(ctx context.Context, username, plaintext string) (models.Account, error)
	GetPublic(ctx context.Context, accountID string) (models.PublicAccount, error)
	UpdateProfile(ctx context.Context, accountID string, patch models.AccountPatch) (models.Account, error)
	ReplacePhoto(ctx context.Context, accountID string, data []byte, contentType string) (models.Account, error)
}

const cacheTTL = 15 * time.Minute

type accountService struct {
	repo   repository.AccountRepository
	photos storage.PhotoStore
	cache  AccountCache
	events *events.Publisher
	log    *zap.Logger
	now    func() time.Time
}

func NewAccountService(repo repository.AccountRepository, photos storage.PhotoStore, cache AccountCache, pub *events.Publisher, log *zap.Logger) AccountService {
	return &accountService{
		repo:   repo,
		photos: photos,
		cache:  cache,
		events: pub,
		log:    log,
		now:    time.Now,
	}
}

func cacheKey(accountID string) string { return "account:" + accountID }

// Signup creates an account. The pre-checks give friendly conflicts for the
// common case; the store's unique indexes settle concurrent races and map
// to the same conflict error.
func (s *accountService) Signup(ctx context.Context, req models.SignupRequest) (models.Account, error) {
	if taken, err := s.repo.UsernameTaken(ctx, req.Username); err != nil {
		return models.Account{}, err
	} else if taken {
		return models.Account{}, apperr.Conflict("username")
	}
	if taken, err := s.repo.PhoneTaken(ctx, req.Phone); err != nil {
		return models.Account{}, err
	} else if taken {
		return models.Account{}, apperr.Conflict("phone")
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return models.Account{}, err
	}

	now := s.now()
	a := models.Account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		Phone:        req.Phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return models.Account{}, err
	}

	s.events.Publish(ctx, events.AccountCreated, a.ID, a.Username)
	return a, nil
}

// Authenticate returns the account for valid credentials. An unknown
// username and a wrong password produce the identical error so account
// existence is not revealed.
func (s *accountService) Authenticate(ctx context.Context, username, plaintext string) (models.Account, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.Account{}, apperr.Unauthorized()
		}
		return models.Account{}, err
	}
	if !password.Verify(plaintext, a.PasswordHash) {
		return models.Account{}, apperr.Unauthorized()
	}
	return a, nil
}

// GetPublic returns the caller's public view, read through the cache.
func (s *accountService) GetPublic(ctx context.Context, accountID string) (models.PublicAccount, error) {
	var pub models.PublicAccount
	if s.cache != nil && s.cache.Get(ctx, cacheKey(accountID), &pub) {
		return pub, nil
	}

	a, err := s.getAccount(ctx, accountID)
	if err != nil {
		return models.PublicAccount{}, err
	}
	pub = a.Public()
	if s.cache != nil {
		s.cache.Set(ctx, cacheKey(accountID), pub, cacheTTL)
	}
	return pub, nil
}

// UpdateProfile applies only the supplied fields. An empty patch is a valid
// success that returns the account unchanged without a store write, so the
// updated timestamp does not move.
func (s *accountService) UpdateProfile(ctx context.Context, accountID string, patch models.AccountPatch) (models.Account, error) {
	a, err := s.getAccount(ctx, accountID)
	if err != nil {
		return models.Account{}, err
	}
	if patch.Empty() {
		return a, nil
	}

	if patch.Phone != nil && *patch.Phone != a.Phone {
		taken, err := s.repo.PhoneTakenByOther(ctx, *patch.Phone, accountID)
		if err != nil {
			return models.Account{}, err
		}
		if taken {
			return models.Account{}, apperr.Conflict("phone")
		}
	}

	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Age != nil {
		a.Age = *patch.Age
	}
	if patch.Phone != nil {
		a.Phone = *patch.Phone
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &a); err != nil {
		return models.Account{}, err
	}

	s.invalidate(ctx, accountID)
	s.events.Publish(ctx, events.AccountUpdated, a.ID, a.Username)
	return a, nil
}

// ReplacePhoto validates and stores the upload, then swaps the account's
// photo reference. Deleting the replaced file is fire-and-forget cleanup:
// failures are logged, never surfaced.
func (s *accountService) ReplacePhoto(ctx context.Context, accountID string, data []byte, contentType string) (models.Account, error) {
	if !storage.Allowed(contentType) {
		return models.Account{}, apperr.Payload(400, "Unsupported image type")
	}
	if len(data) == 0 {
		return models.Account{}, apperr.Payload(400, "Empty upload")
	}
	if len(data) > storage.MaxPhotoBytes {
		return models.Account{}, apperr.Payload(413, "Image exceeds the 5 MiB limit")
	}

	a, err := s.getAccount(ctx, accountID)
	if err != nil {
		return models.Account{}, err
	}

	ref, err := s.photos.Save(data, contentType)
	if err != nil {
		return models.Account{}, err
	}

	old := a.PhotoURL
	a.PhotoURL = ref
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, &a); err != nil {
		return models.Account{}, err
	}

	if old != "" {
		if err := s.photos.Delete(old); err != nil {
			s.log.Warn("delete replaced photo", zap.String("ref", old), zap.Error(err))
		}
	}

	s.invalidate(ctx, accountID)
	s.events.Publish(ctx, events.AccountUpdated, a.ID, a.Username)
	return a, nil
}

// getAccount translates a missing record into unauthorized: a valid token
// whose account is gone must look the same as a bad token.
func (s *accountService) getAccount(ctx context.Context, accountID string) (models.Account, error) {
	a, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.Account{}, apperr.Unauthorized()
		}
		return models.Account{}, err
	}
	return a, nil
}

func (s *accountService) invalidate(ctx context.Context, accountID string) {
	if s.cache != nil {
		s.cache.Del(ctx, cacheKey(accountID))
	}
}
