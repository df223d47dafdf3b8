// Package port declares the interfaces the application layer depends on.
package port

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/accountmodel/internal/domain/event"
	"github.com/bibbank/accountmodel/internal/domain/model"
)

// Receipt is what the accounts API reports back for a stored account.
type Receipt struct {
	ID        uuid.UUID
	Version   int
	CreatedOn time.Time
}

// AccountSubmitter hands validated accounts to the downstream accounts API.
type AccountSubmitter interface {
	// Submit stores account. cop is nil unless Confirmation of Payee details are attached.
	Submit(ctx context.Context, account model.Account, cop *model.CopAccount) (Receipt, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...event.DomainEvent) error
}
