package service

import (
	"context"
	"testing"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "future", end: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), want: 29},
		{name: "later today", end: time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC), want: 0},
		{name: "past truncates toward zero", end: time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), want: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(tt.end, now))
		})
	}
}

func TestExpiryNotice(t *testing.T) {
	assert.Equal(t, "Verloopt over 12 dagen", ExpiryNotice(entity.ContractExpiring, 12))
	assert.Equal(t, "", ExpiryNotice(entity.ContractExpiring, 0))
	assert.Equal(t, "Verlopen sinds 40 dagen", ExpiryNotice(entity.ContractExpired, -40))
	assert.Equal(t, "", ExpiryNotice(entity.ContractActive, 300))
}

func TestContractListStatsCoverAll(t *testing.T) {
	svc := NewContractService(memory.NewContractRepository(), scheduler.NewVirtual())

	res, err := svc.List(context.Background(), &dto.ListContractsRequest{Area: "Amsterdam Centrum"})
	require.NoError(t, err)
	require.Len(t, res.Contracts, 2)
	assert.Equal(t, 6, res.Stats.Total)
	assert.Equal(t, 3, res.Stats.Active)
	assert.Equal(t, 2, res.Stats.Expiring)
	assert.Equal(t, 1, res.Stats.Expired)
	assert.Len(t, res.Areas, 5)
	assert.Equal(t, "Amsterdam Centrum", res.Areas[0])
}

func TestContractListDerivesNotices(t *testing.T) {
	svc := NewContractService(memory.NewContractRepository(), scheduler.NewVirtual())

	res, err := svc.List(context.Background(), &dto.ListContractsRequest{Status: "expired"})
	require.NoError(t, err)
	require.Len(t, res.Contracts, 1)
	c := res.Contracts[0]
	assert.Equal(t, "Consulting Group", c.Tenant)
	assert.Equal(t, -215, c.DaysUntilExpiry)
	assert.Equal(t, "Verlopen sinds 215 dagen", c.ExpiryNotice)
	assert.Equal(t, "2024-05-31", c.EndDate)

	res, err = svc.List(context.Background(), &dto.ListContractsRequest{Search: "winkelstraat"})
	require.NoError(t, err)
	require.Len(t, res.Contracts, 1)
	assert.Equal(t, 360, res.Contracts[0].DaysUntilExpiry)
	assert.Equal(t, "Verloopt over 360 dagen", res.Contracts[0].ExpiryNotice)
}
