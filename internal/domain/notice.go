package domain

import "time"

type NoticeKind string

const (
	NoticeAdded        NoticeKind = "added"
	NoticeUpdated      NoticeKind = "updated"
	NoticeRemoved      NoticeKind = "removed"
	NoticeCatalogError NoticeKind = "catalog_error"
)

// Notice is a user-facing signal raised by cart and catalog operations.
// Seq is assigned by the feed that stores it.
type Notice struct {
	Seq       int64      `json:"seq,omitempty"`
	ID        string     `json:"id"`
	Kind      NoticeKind `json:"kind"`
	ProductID int        `json:"productId,omitempty"`
	Message   string     `json:"message"`
	At        time.Time  `json:"at"`
}
