package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aduanafuel/invoice-workflow/internal/domain/entity"
)

type mockNotificationStore struct {
	rows   []*entity.Notification
	nextID int64
}

func (m *mockNotificationStore) Create(ctx context.Context, n *entity.Notification) error {
	m.nextID++
	n.ID = m.nextID
	m.rows = append(m.rows, n)
	return nil
}

func (m *mockNotificationStore) GetByID(ctx context.Context, id int64) (*entity.Notification, error) {
	for _, n := range m.rows {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (m *mockNotificationStore) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for i := len(m.rows) - 1; i >= 0; i-- {
		n := m.rows[i]
		if n.RecipientID != recipientID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *mockNotificationStore) MarkRead(ctx context.Context, id int64) error {
	for _, n := range m.rows {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

func validRates() RatesInput {
	return RatesInput{
		IEPS:             decimal.RequireFromString("4.59"),
		IVA:              decimal.RequireFromString("0.16"),
		PVR:              decimal.RequireFromString("0.20"),
		IVAPVR:           decimal.RequireFromString("0.16"),
		ConversionFactor: decimal.RequireFromString("0.264172"),
	}
}

func TestTaxConfigService_CurrentMissing(t *testing.T) {
	owner, _, _ := testUsers()
	svc := NewTaxConfigService(&mockTaxRepo{}, newMockUserRepo(owner), nopLogger{})

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestTaxConfigService_UpdateAdminOnly(t *testing.T) {
	owner, supervisor, admin := testUsers()
	repo := &mockTaxRepo{}
	svc := NewTaxConfigService(repo, newMockUserRepo(owner, supervisor, admin), nopLogger{})

	_, err := svc.Update(context.Background(), owner.ID, validRates())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Update(context.Background(), supervisor.ID, validRates())
	assert.ErrorIs(t, err, ErrPermissionDenied)

	cfg, err := svc.Update(context.Background(), admin.ID, validRates())
	require.NoError(t, err)
	require.NotNil(t, cfg.UpdatedBy)
	assert.Equal(t, admin.ID, *cfg.UpdatedBy)

	current, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.True(t, current.IEPS.Equal(decimal.RequireFromString("4.59")))
}

func TestTaxConfigService_UpdateValidation(t *testing.T) {
	_, _, admin := testUsers()
	svc := NewTaxConfigService(&mockTaxRepo{}, newMockUserRepo(admin), nopLogger{})

	tests := []struct {
		name   string
		mutate func(*RatesInput)
	}{
		{"negative ieps", func(in *RatesInput) { in.IEPS = decimal.NewFromInt(-1) }},
		{"iva above one", func(in *RatesInput) { in.IVA = decimal.RequireFromString("1.16") }},
		{"negative pvr", func(in *RatesInput) { in.PVR = decimal.NewFromInt(-1) }},
		{"iva_pvr above one", func(in *RatesInput) { in.IVAPVR = decimal.NewFromInt(2) }},
		{"zero conversion factor", func(in *RatesInput) { in.ConversionFactor = decimal.Zero }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRates()
			tt.mutate(&in)

			_, err := svc.Update(context.Background(), admin.ID, in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestTaxConfigService_ExistingInvoicesKeepTotals(t *testing.T) {
	// A rate change must only affect invoices computed after it.
	owner, supervisor, admin := testUsers()
	f := newFixture(owner, supervisor, admin)
	taxSvc := NewTaxConfigService(f.taxRepo, f.userRepo, nopLogger{})

	before := submitInvoice(t, f, owner.ID)

	in := validRates()
	in.IEPS = decimal.RequireFromString("5.00")
	_, err := taxSvc.Update(context.Background(), admin.ID, in)
	require.NoError(t, err)

	stored, err := f.svc.Get(context.Background(), owner.ID, before.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalDue.Equal(before.TotalDue), "stored totals changed after a rate update")

	after, err := f.svc.Submit(context.Background(), owner.ID, validInput())
	require.NoError(t, err)
	assert.False(t, after.IEPS.Equal(before.IEPS), "new invoice should use the new IEPS rate")
}

func TestUserService_SetCredits(t *testing.T) {
	owner, supervisor, admin := testUsers()
	repo := newMockUserRepo(owner, supervisor, admin)
	svc := NewUserService(repo, nopLogger{})

	err := svc.SetCredits(context.Background(), supervisor.ID, owner.ID, 10)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.SetCredits(context.Background(), admin.ID, owner.ID, -1)
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.SetCredits(context.Background(), admin.ID, 99, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.SetCredits(context.Background(), admin.ID, owner.ID, 10))
	got, err := svc.Get(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Credits)
}

func TestUserService_SetActive(t *testing.T) {
	owner, supervisor, admin := testUsers()
	repo := newMockUserRepo(owner, supervisor, admin)
	svc := NewUserService(repo, nopLogger{})

	err := svc.SetActive(context.Background(), owner.ID, supervisor.ID, false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, svc.SetActive(context.Background(), admin.ID, supervisor.ID, false))
	got, err := svc.Get(context.Background(), supervisor.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestNotificationService_RoleFanOutSkipsInactive(t *testing.T) {
	_, supervisor, admin := testUsers()
	second := &entity.User{ID: 4, Name: "Rosa", Role: entity.RoleSupervisor, Active: false}
	repo := &mockNotificationStore{}
	svc := NewNotificationService(repo, newMockUserRepo(supervisor, admin, second), nopLogger{})

	err := svc.NotifyRole(context.Background(), entity.RoleSupervisor, nil, "t", "m", entity.SeverityInfo)
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, supervisor.ID, repo.rows[0].RecipientID)
}

func TestNotificationService_MarkReadOwnership(t *testing.T) {
	owner, supervisor, _ := testUsers()
	repo := &mockNotificationStore{}
	svc := NewNotificationService(repo, newMockUserRepo(owner, supervisor), nopLogger{})

	require.NoError(t, svc.Notify(context.Background(), owner.ID, nil, "t", "m", entity.SeverityInfo))
	id := repo.rows[0].ID

	err := svc.MarkRead(context.Background(), supervisor.ID, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.MarkRead(context.Background(), owner.ID, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.MarkRead(context.Background(), owner.ID, id))
	assert.True(t, repo.rows[0].Read)
}
