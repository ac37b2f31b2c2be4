package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/repository"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/billing"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/freight"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/ticket"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/auth"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/daterange"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 20, 9, 0, 0, 0, daterange.FixedZone(-4))

func testDates() *daterange.Builder {
	return daterange.NewBuilder(daterange.Config{UTCOffsetHours: -4, Now: func() time.Time { return fixedNow }})
}

// memFreight guarda as notas em memória com a mesma semântica do repositório PostgreSQL
type memFreight struct {
	mu    sync.Mutex
	notes map[string]freight.Note
	next  int
	err   error
	delay time.Duration
}

func newMemFreight() *memFreight {
	return &memFreight{notes: map[string]freight.Note{}, next: 1}
}

func (m *memFreight) Create(_ context.Context, n *freight.Note) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	n.NoteNumber = m.next
	m.next++
	m.notes[n.ID] = *n
	return nil
}

func (m *memFreight) FindByID(_ context.Context, id string) (*freight.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}
	return &n, nil
}

func (m *memFreight) Find(ctx context.Context, f billing.Filter) ([]*freight.Note, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*freight.Note{}
	for _, n := range m.notes {
		if f.Matches(n.IssueDate, n.Payment, string(n.VesselName)) {
			n := n
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate.After(out[j].IssueDate) })
	return out, nil
}

func (m *memFreight) Update(_ context.Context, id string, mutate func(*freight.Note) error) (*freight.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}
	if err := mutate(&n); err != nil {
		return nil, err
	}
	m.notes[id] = n
	return &n, nil
}

type memTickets struct {
	mu      sync.Mutex
	tickets map[string]ticket.Ticket
	next    int
	err     error
}

func newMemTickets() *memTickets {
	return &memTickets{tickets: map[string]ticket.Ticket{}, next: 1}
}

func (m *memTickets) Create(_ context.Context, t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.TicketNumber = m.next
	m.next++
	m.tickets[t.ID] = *t
	return nil
}

func (m *memTickets) FindByID(_ context.Context, id string) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	return &t, nil
}

func (m *memTickets) Find(_ context.Context, f billing.Filter) ([]*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*ticket.Ticket{}
	for _, t := range m.tickets {
		if f.Matches(t.IssueDate, t.Payment, string(t.VesselName)) {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate.After(out[j].IssueDate) })
	return out, nil
}

func (m *memTickets) Update(_ context.Context, id string, mutate func(*ticket.Ticket) error) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil, repository.ErrTicketNotFound
	}
	if err := mutate(&t); err != nil {
		return nil, err
	}
	m.tickets[id] = t
	return &t, nil
}

func (m *memTickets) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tickets[id]; !ok {
		return repository.ErrTicketNotFound
	}
	delete(m.tickets, id)
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newMemUsers(users ...*user.User) *memUsers {
	m := &memUsers{users: map[string]user.User{}}
	for _, u := range users {
		m.users[u.ID] = *u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return repository.ErrUserDuplicateUsername
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) List(_ context.Context) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*user.User{}
	for _, u := range m.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memUsers) SetActive(_ context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Active = active
	m.users[id] = u
	return nil
}

func (m *memUsers) UpdateLastLogin(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	now := fixedNow
	u.LastLoginAt = &now
	m.users[id] = u
	return nil
}

var adminUser = auth.CurrentUser{ID: "admin-1", Username: "admin", Name: "Administrador", Role: string(user.RoleAdmin)}

// asUser simula o middleware de autenticação
func asUser(u auth.CurrentUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.SetCurrentUser(c, u)
		c.Next()
	}
}

func newRouter(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares...)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func repositoryFailure() error {
	return fmt.Errorf("%w: conexão recusada", repository.ErrDatabase)
}
