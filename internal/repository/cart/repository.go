package cart

import (
	"context"
	"fmt"
	"strings"
)

// Repository stores serialized carts in named slots. Load returns
// domain.ErrNotFound when nothing has been saved under slot yet.
type Repository interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, payload []byte) error
	Ping(ctx context.Context) error
}

func validSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("slot name required")
	}
	if strings.ContainsAny(slot, `/\`) || strings.Contains(slot, "..") {
		return fmt.Errorf("invalid slot name %q", slot)
	}
	return nil
}
