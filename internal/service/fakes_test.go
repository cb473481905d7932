package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/dispatcher"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
)

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications map[string]*entity.Notification
	recipients    map[string][]entity.NotificationRecipient
	failCreate    error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{
		notifications: make(map[string]*entity.Notification),
		recipients:    make(map[string][]entity.NotificationRecipient),
	}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification, recipients []entity.NotificationRecipient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	r.notifications[n.ID] = n
	r.recipients[n.ID] = recipients
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notifications[id], nil
}

func (r *fakeNotificationRepo) GetRecipients(_ context.Context, notificationID string) ([]entity.NotificationRecipient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recipients[notificationID], nil
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifications)
}

type teamMember struct {
	userID string
	active bool
}

type fakeTeamRepo struct {
	members map[string][]teamMember
	fail    error
}

func (r *fakeTeamRepo) GetActiveMemberIDs(_ context.Context, equipeID string) ([]string, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	var ids []string
	for _, m := range r.members[equipeID] {
		if m.active {
			ids = append(ids, m.userID)
		}
	}
	return ids, nil
}

type fakeTeamCache struct {
	mu      sync.Mutex
	entries map[string][]string
	sets    int
}

func newFakeTeamCache() *fakeTeamCache {
	return &fakeTeamCache{entries: make(map[string][]string)}
}

func (c *fakeTeamCache) GetMembers(_ context.Context, equipeID string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids, ok := c.entries[equipeID]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return ids, nil
}

func (c *fakeTeamCache) SetMembers(_ context.Context, equipeID string, userIDs []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[equipeID] = userIDs
	c.sets++
	return nil
}

type fakePush struct {
	calls []dispatcher.PushRequest
	fail  error
}

func (p *fakePush) Send(_ context.Context, req *dispatcher.PushRequest) error {
	p.calls = append(p.calls, *req)
	return p.fail
}

type whatsappCall struct {
	phone   string
	message string
	link    *dispatcher.LinkMessage
}

type fakeWhatsApp struct {
	calls []whatsappCall
	fail  error
}

func (w *fakeWhatsApp) SendText(_ context.Context, phone, message string) (*dispatcher.GatewayResponse, error) {
	if phone == "" {
		return nil, entity.ErrMissingPhone
	}
	w.calls = append(w.calls, whatsappCall{phone: phone, message: message})
	if w.fail != nil {
		return nil, w.fail
	}
	return &dispatcher.GatewayResponse{StatusCode: 200}, nil
}

func (w *fakeWhatsApp) SendLink(_ context.Context, msg *dispatcher.LinkMessage) (*dispatcher.GatewayResponse, error) {
	if msg.Phone == "" {
		return nil, entity.ErrMissingPhone
	}
	w.calls = append(w.calls, whatsappCall{phone: msg.Phone, message: msg.Message, link: msg})
	if w.fail != nil {
		return nil, w.fail
	}
	return &dispatcher.GatewayResponse{StatusCode: 200}, nil
}

type fakePublisher struct {
	published int
	fail      error
}

func (p *fakePublisher) PublishNotification(*entity.Notification, []string) error {
	p.published++
	return p.fail
}

func (p *fakePublisher) Close() error { return nil }

// fakeAuditRepo backs the Recorder in tests, so dedup markers and audit
// entries land in the same in-memory log like they share a table in postgres.
type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []entity.AuditLogEntry
	fail    error
	nextID  int
}

func (r *fakeAuditRepo) Append(_ context.Context, e *entity.AuditLogEntry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return "", r.fail
	}
	r.nextID++
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *e)
	return e.ID, nil
}

func (r *fakeAuditRepo) HasDedupMarker(_ context.Context, messageID string, since time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return false, r.fail
	}
	for _, e := range r.entries {
		if e.EntityType == entity.EntityWhatsAppMessage &&
			e.EntityID == messageID &&
			e.Action == entity.ActionDedupMarker &&
			e.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAuditRepo) GetByEntity(_ context.Context, entityType, entityID string, from, to time.Time) ([]entity.AuditLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.AuditLogEntry
	for _, e := range r.entries {
		if e.EntityType == entityType && e.EntityID == entityID &&
			e.CreatedAt.After(from) && e.CreatedAt.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeAuditRepo) countAction(action string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}
