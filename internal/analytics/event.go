package analytics

import "time"

// Topics for link lifecycle events.
const (
	TopicLinkCreated  = "link.created"
	TopicLinkResolved = "link.resolved"
)

// LinkCreatedEvent is emitted when a short link is allocated.
type LinkCreatedEvent struct {
	Code      string    `json:"code"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// LinkResolvedEvent is emitted on every successful redirect.
type LinkResolvedEvent struct {
	Code       string    `json:"code"`
	Path       string    `json:"path"`
	ResolvedAt time.Time `json:"resolvedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer,omitempty"`
}
