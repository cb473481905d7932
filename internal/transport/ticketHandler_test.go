package transport

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/audit"
	"github.com/saulloallves/central-tickets-94-sub006/internal/entity"
	"github.com/saulloallves/central-tickets-94-sub006/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTicketRepo struct {
	tickets map[string]*entity.Ticket
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*entity.Ticket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (r *memTicketRepo) Update(_ context.Context, t *entity.Ticket) error {
	copied := *t
	r.tickets[t.ID] = &copied
	return nil
}

func newTicketTestRouter(t *testing.T) (*gin.Engine, *memTicketRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &memTicketRepo{tickets: map[string]*entity.Ticket{
		"t-1": {
			ID:        "t-1",
			Title:     "Sistema fora do ar",
			Status:    entity.TicketStatusOpen,
			EquipeID:  "equipe-1",
			CreatedAt: time.Now().Add(-time.Hour),
			UpdatedAt: time.Now().Add(-time.Hour),
		},
	}}

	recorder := audit.NewRecorder(&memAuditRepo{})
	notifications := service.NewNotificationService(
		&memNotificationRepo{}, memTeamRepo{}, nil, nopPush{}, nopWhatsApp{}, nopPublisher{}, recorder, "")
	tickets := service.NewTicketService(repo, notifications, nopWhatsApp{}, recorder, "https://painel.example.com")

	router := gin.New()
	handler := NewTicketHandler(tickets)
	router.POST("/api/v1/tickets/update", handler.UpdateTicket)
	router.POST("/api/v1/tickets/forward", handler.ForwardTicket)
	return router, repo
}

func postTicket(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestTicketUpdateBindsCamelCaseBody(t *testing.T) {
	router, repo := newTicketTestRouter(t)

	w := postTicket(router, "/api/v1/tickets/update",
		`{"ticketId":"t-1","updates":{"status":"resolved"},"actorId":"admin-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resolved"`)
	assert.Equal(t, entity.TicketStatusResolved, repo.tickets["t-1"].Status)
}

func TestTicketUpdateUnknownTicketIs404(t *testing.T) {
	router, _ := newTicketTestRouter(t)

	w := postTicket(router, "/api/v1/tickets/update",
		`{"ticketId":"missing","updates":{"status":"closed"}}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTicketForwardBindsCamelCaseBody(t *testing.T) {
	router, _ := newTicketTestRouter(t)

	w := postTicket(router, "/api/v1/tickets/forward",
		`{"ticketId":"t-1","phone":"5511988887777","linkUrl":"https://painel.example.com/tickets/t-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gateway_status":200`)
}
