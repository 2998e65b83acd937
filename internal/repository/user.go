package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"timekeeper/entity"
	"timekeeper/internal/lib/sl"
	"timekeeper/internal/storage"
)

// ErrNoSession means an operation that needs a bound chat session got a
// user without one.
var ErrNoSession = errors.New("user has no chat session")

// Users resolves users from the cached session records and the users
// handbook.
type Users struct {
	cache  Cache
	google *Google
	log    *slog.Logger
}

func NewUsers(cache Cache, google *Google, log *slog.Logger) *Users {
	return &Users{
		cache:  cache,
		google: google,
		log:    log.With(sl.Module("repository.users")),
	}
}

// GetByChatID loads the session record bound to a chat. A session whose
// handbook record has gone inactive (or vanished) is deleted eagerly and
// reported as no session.
func (r *Users) GetByChatID(ctx context.Context, chatID int64) (*entity.User, error) {
	data, err := r.cache.GetData(ctx, storage.UserKey(chatID))
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	user := &entity.User{}
	if err := storage.Decode(data, user); err != nil {
		r.log.Warn("corrupt session record", slog.Int64("chat_id", chatID), sl.Err(err))
		return nil, nil
	}

	fresh, err := r.GetByCode(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		if err := r.Delete(ctx, chatID); err != nil {
			return nil, err
		}
		r.log.Info("session invalidated", slog.Int64("chat_id", chatID), slog.String("user_id", user.ID))
		return nil, nil
	}

	return user, nil
}

// GetByCode finds an active handbook user by personal code.
func (r *Users) GetByCode(ctx context.Context, code string) (*entity.User, error) {
	users, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == code && users[i].Active {
			user := users[i]
			return &user, nil
		}
	}
	return nil, nil
}

// GetAll returns the cached users handbook, refetching it on a miss.
func (r *Users) GetAll(ctx context.Context) ([]entity.User, error) {
	data, err := r.cache.GetData(ctx, storage.UsersListKey())
	if err != nil {
		return nil, fmt.Errorf("loading users handbook: %w", err)
	}
	if len(data) == 0 {
		if err := r.google.UpdateHandbooks(ctx); err != nil {
			r.log.Warn("refreshing handbooks", sl.Err(err))
			return nil, nil
		}
		data, err = r.cache.GetData(ctx, storage.UsersListKey())
		if err != nil {
			return nil, fmt.Errorf("loading users handbook: %w", err)
		}
	}

	users, err := storage.DecodeList[entity.User](data, storage.UsersListKey())
	if err != nil {
		return nil, fmt.Errorf("decoding users handbook: %w", err)
	}
	return users, nil
}

// Upsert stores the session record under the user's chat id.
func (r *Users) Upsert(ctx context.Context, user *entity.User) error {
	if !user.HasSession() {
		return ErrNoSession
	}
	data, err := storage.Encode(user)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := r.cache.SetData(ctx, storage.UserKey(user.ChatID), data, 0); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Delete removes the session record for a chat.
func (r *Users) Delete(ctx context.Context, chatID int64) error {
	return r.cache.DelKeys(ctx, storage.UserKey(chatID))
}
