package types

import (
	"net/http"
)

type TrackingAction struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackSort(sessionId string, key SortKey, resultLen int)
	TrackFilter(sessionId string, groupId string, selected []string)
	TrackWishlist(sessionId string, productId ProductId, wishlisted bool)
	TrackAction(sessionId string, value TrackingAction) error
	Close() error
}
