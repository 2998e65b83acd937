package handbook

import (
	"context"

	"timekeeper/entity"
)

// Core is the slice of the repository the handbook handlers need.
type Core interface {
	UpdateHandbooks(ctx context.Context) error
	GetClients(ctx context.Context) ([]entity.Client, error)
}
