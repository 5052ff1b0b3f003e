package settings

import (
	"context"
	"log"
	"strings"
	"unicode"
)

// Settings is the full shop settings snapshot, keyed by setting name.
// Missing keys mean "unset"; accessors apply the documented defaults.
type Settings map[string]string

const (
	KeyShopStatus = "shop_status"
	KeyPhone      = "phone"
	KeyUPIID      = "upi_id"

	StatusOpen   = "open"
	StatusClosed = "closed"
)

// ShopOpen reports whether the shop is taking orders. An absent or
// unrecognized shop_status means closed.
func (s Settings) ShopOpen() bool {
	return s[KeyShopStatus] == StatusOpen
}

func (s Settings) Phone() string {
	return s[KeyPhone]
}

// PhoneDigits returns the contact phone with every non-digit stripped,
// ready for a messaging deep link.
func (s Settings) PhoneDigits() string {
	var b strings.Builder
	for _, r := range s.Phone() {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s Settings) UPIID() string {
	return s[KeyUPIID]
}

// Store is the slice of the remote store this package reads.
// Consumers define this interface, not the MongoDB implementation.
type Store interface {
	ListSettings(ctx context.Context) (map[string]string, error)
}

// Cache loads the settings collection in full. Settings are advisory:
// a store failure degrades to an empty snapshot instead of failing the
// caller, and every Load hits the store so checkout never re-checks a
// stale shop status.
type Cache struct {
	store Store
}

func NewCache(s Store) *Cache {
	return &Cache{store: s}
}

func (c *Cache) Load(ctx context.Context) Settings {
	values, err := c.store.ListSettings(ctx)
	if err != nil {
		log.Printf("settings load failed, using empty snapshot: %v", err)
		return Settings{}
	}
	return Settings(values)
}
