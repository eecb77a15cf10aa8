package clients

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

type fakeClientRepo struct {
	byID map[int64]*domain.Client
}

func newFakeClientRepo(clients ...*domain.Client) *fakeClientRepo {
	f := &fakeClientRepo{byID: make(map[int64]*domain.Client)}
	for _, c := range clients {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeClientRepo) GetByID(_ context.Context, tenantID, id int64) (*domain.Client, error) {
	c, ok := f.byID[id]
	if !ok || c.TenantID != tenantID {
		return nil, clientRepo.ErrClientNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClientRepo) ListByTenant(_ context.Context, tenantID int64, search string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range f.byID {
		if c.TenantID != tenantID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) &&
			!strings.Contains(c.Phone, search) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientRepo) UpdateNotes(_ context.Context, tenantID, id int64, notes string) error {
	c, ok := f.byID[id]
	if !ok || c.TenantID != tenantID {
		return clientRepo.ErrClientNotFound
	}
	c.Notes = &notes
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(clients ...*domain.Client) *Service {
	return NewService(newFakeClientRepo(clients...), nopLogger{})
}

func TestList_SearchByName(t *testing.T) {
	svc := newService(
		&domain.Client{ID: 1, TenantID: 1, Name: "Maria Silva", Phone: "11987654321"},
		&domain.Client{ID: 2, TenantID: 1, Name: "Joao Santos", Phone: "11912345678"},
	)

	resp, err := svc.List(context.Background(), &models.ListClientsRequest{TenantID: 1, Search: "maria"})
	require.NoError(t, err)

	require.Len(t, resp.Clients, 1)
	assert.Equal(t, "Maria Silva", resp.Clients[0].Name)
}

func TestList_IsolatedByTenant(t *testing.T) {
	svc := newService(
		&domain.Client{ID: 1, TenantID: 1, Name: "Maria Silva", Phone: "11987654321"},
		&domain.Client{ID: 2, TenantID: 2, Name: "Maria Souza", Phone: "11911112222"},
	)

	resp, err := svc.List(context.Background(), &models.ListClientsRequest{TenantID: 1})
	require.NoError(t, err)

	require.Len(t, resp.Clients, 1)
	assert.Equal(t, int64(1), resp.Clients[0].ID)
}

func TestUpdateNotes_Stored(t *testing.T) {
	svc := newService(&domain.Client{ID: 1, TenantID: 1, Name: "Maria Silva", Phone: "11987654321"})

	resp, err := svc.UpdateNotes(context.Background(), 1, 1, &models.UpdateNotesRequest{Notes: "prefers morning slots"})
	require.NoError(t, err)

	require.NotNil(t, resp.Notes)
	assert.Equal(t, "prefers morning slots", *resp.Notes)
}

func TestUpdateNotes_TooLong(t *testing.T) {
	svc := newService(&domain.Client{ID: 1, TenantID: 1, Name: "Maria Silva", Phone: "11987654321"})

	_, err := svc.UpdateNotes(context.Background(), 1, 1, &models.UpdateNotesRequest{
		Notes: strings.Repeat("a", domain.MaxNotesLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateNotes_NotFound(t *testing.T) {
	svc := newService()

	_, err := svc.UpdateNotes(context.Background(), 1, 404, &models.UpdateNotesRequest{Notes: "x"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}
