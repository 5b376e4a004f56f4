package core

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/metrics"
	"SchoolQL/internal/lib/sl"
	"SchoolQL/internal/lib/ticket"
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const (
	FeedTicketTTL = time.Minute
	feedSubject   = "feed"
)

// Repository loads and replaces the whole school collection.
type Repository interface {
	Load(ctx context.Context) ([]entity.School, error)
	Persist(ctx context.Context, schools []entity.School) error
}

// EventPublisher receives an event after every persisted write.
type EventPublisher interface {
	PublishSchoolEvent(event entity.SchoolEvent)
}

// Core is the single owner of the school store. Writes hold an exclusive
// lock across load, transform and persist; reads share the lock.
type Core struct {
	repo    Repository
	events  EventPublisher
	metrics *metrics.Metrics
	authKey string
	mu      sync.RWMutex
	log     *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetEventPublisher(events EventPublisher) {
	c.events = events
}

func (c *Core) SetMetrics(m *metrics.Metrics) {
	c.metrics = m
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

// AuthEnabled reports whether requests must carry the API key.
func (c *Core) AuthEnabled() bool {
	return c.authKey != ""
}

// AuthenticateByToken checks a bearer token against the configured API key.
func (c *Core) AuthenticateByToken(token string) (string, error) {
	if c.authKey == "" {
		return "anonymous", nil
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.authKey)) != 1 {
		return "", fmt.Errorf("invalid api key")
	}
	return "api", nil
}

// ValidateToken authenticates the websocket feed. It accepts the API key or
// a ticket from IssueFeedTicket.
func (c *Core) ValidateToken(token string) (string, error) {
	user, err := c.AuthenticateByToken(token)
	if err == nil {
		return user, nil
	}
	subject, terr := ticket.Verify(token, c.authKey)
	if terr != nil {
		return "", fmt.Errorf("%w; %w", err, terr)
	}
	return subject, nil
}

// IssueFeedTicket returns a websocket ticket valid for FeedTicketTTL.
func (c *Core) IssueFeedTicket() (string, time.Time, error) {
	if c.authKey == "" {
		return "", time.Time{}, fmt.Errorf("authentication disabled")
	}
	expires := time.Now().Add(FeedTicketTTL)
	return ticket.Sign(feedSubject, c.authKey, FeedTicketTTL), expires, nil
}

func (c *Core) load(ctx context.Context) ([]entity.School, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("%w: repository not set", entity.ErrStorage)
	}
	schools, err := c.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load: %w", entity.ErrStorage, err)
	}
	return schools, nil
}

func (c *Core) persist(ctx context.Context, schools []entity.School) error {
	if c.repo == nil {
		return fmt.Errorf("%w: repository not set", entity.ErrStorage)
	}
	if err := c.repo.Persist(ctx, schools); err != nil {
		return fmt.Errorf("%w: persist: %w", entity.ErrStorage, err)
	}
	return nil
}

func (c *Core) publish(t entity.EventType, school entity.School) {
	if c.events == nil {
		return
	}
	c.events.PublishSchoolEvent(entity.NewSchoolEvent(t, school))
}
