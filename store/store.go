package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/verbalis/verbalis/internal/profile"
	"github.com/verbalis/verbalis/store/cache"
)

// ErrContactNotFound is returned when fuzzy lookup finds no contact.
var ErrContactNotFound = errors.New("contact not found")

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	contactCache *cache.Cache

	// appendMu serializes chat-history appends so concurrent turns
	// cannot interleave log entries.
	appendMu sync.Mutex
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
		contactCache: cache.New(cache.Config{
			DefaultTTL:      10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			MaxItems:        500,
		}),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

// Migrate creates the schema idempotently.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	s.contactCache.Close()
	return s.driver.Close()
}

func (s *Store) CreateContact(ctx context.Context, create *Contact) (*Contact, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	contact, err := s.driver.CreateContact(ctx, create)
	if err != nil {
		return nil, err
	}
	s.contactCache.Purge()
	return contact, nil
}

func (s *Store) ListContacts(ctx context.Context, find *FindContact) ([]*Contact, error) {
	return s.driver.ListContacts(ctx, find)
}

func (s *Store) DeleteContact(ctx context.Context, delete *DeleteContact) error {
	if err := s.driver.DeleteContact(ctx, delete); err != nil {
		return err
	}
	s.contactCache.Purge()
	return nil
}

// FindContactByName performs a fuzzy contact lookup: case-insensitive
// substring match in both directions, so "tom" finds "Tom Hardy" and
// "thomas anderson" finds "Thomas". The first match in list order wins.
func (s *Store) FindContactByName(ctx context.Context, name string) (*Contact, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil, ErrContactNotFound
	}

	if v, ok := s.contactCache.Get(query); ok {
		return v.(*Contact), nil
	}

	contacts, err := s.driver.ListContacts(ctx, &FindContact{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	for _, contact := range contacts {
		stored := strings.ToLower(contact.Name)
		if strings.Contains(stored, query) || strings.Contains(query, stored) {
			s.contactCache.Set(query, contact)
			return contact, nil
		}
	}
	return nil, ErrContactNotFound
}

// CreateChatExchange appends one exchange to the chat history.
// Appends are serialized; the log is never mutated afterwards.
func (s *Store) CreateChatExchange(ctx context.Context, create *ChatExchange) (*ChatExchange, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	s.appendMu.Lock()
	defer s.appendMu.Unlock()
	return s.driver.CreateChatExchange(ctx, create)
}

// ListChatExchanges returns exchanges, most recent first.
func (s *Store) ListChatExchanges(ctx context.Context, find *FindChatExchange) ([]*ChatExchange, error) {
	return s.driver.ListChatExchanges(ctx, find)
}
