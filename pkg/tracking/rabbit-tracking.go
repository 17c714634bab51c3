package tracking

import (
	"net/http"

	"github.com/matst80/slask-storefront/pkg/messaging"
	"github.com/matst80/slask-storefront/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventSession  uint16 = 0
	EventSort     uint16 = 1
	EventFilter   uint16 = 2
	EventWishlist uint16 = 3
	EventAction   uint16 = 6
)

type RabbitTracking struct {
	country    string
	connection *amqp.Connection
	logger     *zap.Logger
	publish    func(data any) error
}

func NewRabbitTracking(url, country string, logger *zap.Logger) (*RabbitTracking, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ret := &RabbitTracking{
		country: country,
		logger:  logger,
	}
	if err := ret.connect(url); err != nil {
		return nil, err
	}
	ret.publish = func(data any) error {
		return messaging.SendChange(ret.connection, messaging.DefaultPrefix, messaging.StorefrontEvents, data)
	}
	return ret, nil
}

func (t *RabbitTracking) connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	if err := defineTopic(conn); err != nil {
		_ = conn.Close()
		return err
	}
	t.connection = conn
	return nil
}

func defineTopic(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return messaging.DefineTopic(ch, messaging.DefaultPrefix, messaging.StorefrontEvents)
}

func (t *RabbitTracking) Close() error {
	if t.connection == nil {
		return nil
	}
	return t.connection.Close()
}

func (t *RabbitTracking) base(event uint16, sessionId string) *BaseEvent {
	return &BaseEvent{Event: event, SessionId: sessionId, Country: t.country, Context: "b2c"}
}

func (t *RabbitTracking) send(name string, data any) {
	if err := t.publish(data); err != nil {
		t.logger.Warn("error sending tracking event", zap.String("event", name), zap.Error(err))
	}
}

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Country   string `json:"country,omitempty"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
}

type Session struct {
	*BaseEvent
	UserAgent    string `json:"user_agent,omitempty"`
	Ip           string `json:"ip,omitempty"`
	Language     string `json:"language,omitempty"`
	PragmaHeader string `json:"pragma,omitempty"`
}

func clientIp(r *http.Request) string {
	ip := r.Header.Get("X-Real-Ip")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
	}
	if ip == "" {
		ip = r.RemoteAddr
	}
	return ip
}

func (t *RabbitTracking) TrackSession(sessionId string, r *http.Request) {
	t.send("session", Session{
		BaseEvent:    t.base(EventSession, sessionId),
		Language:     r.Header.Get("Accept-Language"),
		UserAgent:    r.UserAgent(),
		Ip:           clientIp(r),
		PragmaHeader: r.Header.Get("Pragma"),
	})
}

type SortEvent struct {
	*BaseEvent
	SortKey         types.SortKey `json:"sort"`
	NumberOfResults int           `json:"noi"`
}

func (t *RabbitTracking) TrackSort(sessionId string, key types.SortKey, resultLen int) {
	t.send("sort", &SortEvent{
		BaseEvent:       t.base(EventSort, sessionId),
		SortKey:         key,
		NumberOfResults: resultLen,
	})
}

type FilterEvent struct {
	*BaseEvent
	Group    string   `json:"group"`
	Selected []string `json:"selected"`
}

func (t *RabbitTracking) TrackFilter(sessionId string, groupId string, selected []string) {
	t.send("filter", &FilterEvent{
		BaseEvent: t.base(EventFilter, sessionId),
		Group:     groupId,
		Selected:  selected,
	})
}

type WishlistEvent struct {
	*BaseEvent
	Item       types.ProductId `json:"item"`
	Wishlisted bool            `json:"wishlisted"`
}

func (t *RabbitTracking) TrackWishlist(sessionId string, productId types.ProductId, wishlisted bool) {
	t.send("wishlist", &WishlistEvent{
		BaseEvent:  t.base(EventWishlist, sessionId),
		Item:       productId,
		Wishlisted: wishlisted,
	})
}

type ActionEvent struct {
	*BaseEvent
	Action string `json:"action"`
	Reason string `json:"reason"`
}

func (t *RabbitTracking) TrackAction(sessionId string, value types.TrackingAction) error {
	return t.publish(&ActionEvent{
		BaseEvent: t.base(EventAction, sessionId),
		Action:    value.Action,
		Reason:    value.Reason,
	})
}
