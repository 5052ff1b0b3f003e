package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/chitranshagrawalstco-ops/streetbite/internal/basket"
	"github.com/chitranshagrawalstco-ops/streetbite/internal/settings"
)

var (
	ErrEmptyBasket = errors.New("basket is empty, nothing to check out")
	ErrShopClosed  = errors.New("shop is closed")
)

const (
	waBaseURL        = "https://wa.me/"
	messageHeader    = "New Order from StreetBite Website:"
	messageSeparator = "------------------"
	messageFooter    = "Please confirm my order!"
)

// SettingsLoader yields a fresh settings snapshot on every call.
type SettingsLoader interface {
	Load(ctx context.Context) settings.Settings
}

// Basket is the read surface the gate needs. Satisfied by *basket.Basket
// and by the session wrapper that serializes access to one. Snapshot
// yields lines and total as one consistent pair; reading them through
// separate calls could interleave with a concurrent edit and tear the
// order apart.
type Basket interface {
	LineCount() int
	Snapshot() ([]basket.Line, float64)
}

// Order is the composed outbound message. Checkout ends at handing the
// deep link to the customer's messaging app; nothing is persisted.
type Order struct {
	Message     string  `json:"message"`
	Total       float64 `json:"total"`
	WhatsAppURL string  `json:"whatsapp_url"`
}

// Gate runs the checkout preconditions and composes the order message.
type Gate struct {
	settings SettingsLoader
}

func NewGate(s SettingsLoader) *Gate {
	return &Gate{settings: s}
}

// Checkout validates the basket against a freshly fetched shop status
// and returns the order deep link. The empty check runs before any
// network call; shop status is always re-fetched because the page may
// have been open long enough for the shop to close. The basket is read
// again after the fetch resolves, in one snapshot, so a quantity edit
// that landed while the fetch was in flight is part of the dispatched
// order and the message always agrees with its total.
func (g *Gate) Checkout(ctx context.Context, b Basket) (*Order, error) {
	if b.LineCount() == 0 {
		return nil, ErrEmptyBasket
	}

	snap := g.settings.Load(ctx)
	if !snap.ShopOpen() {
		return nil, ErrShopClosed
	}

	lines, total := b.Snapshot()
	if len(lines) == 0 {
		return nil, ErrEmptyBasket
	}

	message := composeMessage(lines, total)
	return &Order{
		Message:     message,
		Total:       total,
		WhatsAppURL: waBaseURL + snap.PhoneDigits() + "?text=" + url.QueryEscape(message),
	}, nil
}

func composeMessage(lines []basket.Line, total float64) string {
	var b strings.Builder
	b.WriteString(messageHeader + "\n")
	b.WriteString(messageSeparator + "\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "%s x %d\n", line.Item.Name, line.Quantity)
	}
	b.WriteString(messageSeparator + "\n")
	fmt.Fprintf(&b, "Total: ₹%.2f\n\n", total)
	b.WriteString(messageFooter)
	return b.String()
}
