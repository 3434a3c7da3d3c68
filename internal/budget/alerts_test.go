package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/techo/internal/budget"
	"github.com/MrJamesThe3rd/techo/internal/budget/memory"
	"github.com/MrJamesThe3rd/techo/internal/contract"
	"github.com/MrJamesThe3rd/techo/internal/lock"
)

func TestAlertFeed_ListAtRisk(t *testing.T) {
	store := memory.New()

	add := func(name string, ceiling, consumed int64) *contract.Contract {
		c := newContract(ceiling)
		c.Name = name
		store.AddContract(c)

		if consumed > 0 {
			store.AddRecord(newRecord(c.ID, consumed, now.AddDate(0, 0, -1)))
		}

		return c
	}

	alert := add("alert", 1_000, 850)
	critical := add("critical", 1_000, 970)
	add("normal", 1_000, 500)
	add("uncapped", -1, 9_000)
	expired := add("expired", 1_000, 990)

	expiredContract, err := store.GetContract(context.Background(), expired.ID)
	require.NoError(t, err)
	expiredContract.ValidTo = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	store.AddContract(expiredContract)

	feed := budget.NewAlertFeed(store, lock.NewLocal(), testOptions())

	t.Run("orders by risk then percent", func(t *testing.T) {
		entries, err := feed.ListAtRisk(context.Background(), budget.AlertFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, expired.ID, entries[0].ContractID)
		assert.Equal(t, critical.ID, entries[1].ContractID)
		assert.Equal(t, alert.ID, entries[2].ContractID)

		assert.Equal(t, budget.RiskCritical, entries[1].Risk)
		assert.True(t, entries[1].PercentExecuted.Equal(money(97)))
		assert.True(t, entries[2].Available.Equal(money(150)))
		assert.Equal(t, "Salud Norte", entries[2].CompanyName)
	})

	t.Run("only in force", func(t *testing.T) {
		entries, err := feed.ListAtRisk(context.Background(), budget.AlertFilter{OnlyInForce: true})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, critical.ID, entries[0].ContractID)
	})

	t.Run("company filter", func(t *testing.T) {
		entries, err := feed.ListAtRisk(context.Background(), budget.AlertFilter{CompanyID: &alert.Company.ID})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, alert.ID, entries[0].ContractID)
	})

	t.Run("recomputes stale aggregates", func(t *testing.T) {
		store.AddRecord(newRecord(alert.ID, 130, now))

		entries, err := feed.ListAtRisk(context.Background(), budget.AlertFilter{CompanyID: &alert.Company.ID})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, budget.RiskCritical, entries[0].Risk)
	})
}

func TestService_SetCeiling(t *testing.T) {
	tests := []struct {
		name       string
		hasCeiling bool
		ceiling    int64
		wantKind   budget.Kind
		wantErr    error
		wantRisk   budget.Risk
	}{
		{name: "below consumed", hasCeiling: true, ceiling: 800_000, wantKind: budget.KindCeilingBelowConsumed},
		{name: "negative", hasCeiling: true, ceiling: -1, wantErr: budget.ErrInvalidCeiling},
		{name: "equal to consumed", hasCeiling: true, ceiling: 850_000, wantRisk: budget.RiskCritical},
		{name: "increase moves risk back", hasCeiling: true, ceiling: 2_000_000, wantRisk: budget.RiskNormal},
		{name: "remove ceiling", hasCeiling: false, wantRisk: budget.RiskNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newContract(1_000_000)
			store := seeded(c, 850_000)
			svc := budget.NewService(store, unlocked{}, testOptions())

			st, err := svc.SetCeiling(context.Background(), c.ID, tt.hasCeiling, money(tt.ceiling))

			switch {
			case tt.wantKind != "":
				rej := requireKind(t, err, tt.wantKind)
				details, ok := rej.Details.(budget.CeilingDetails)
				require.True(t, ok)
				assert.True(t, details.ProposedCeiling.Equal(money(tt.ceiling)))
				assert.True(t, details.ConsumedValue.Equal(money(850_000)))
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.hasCeiling, st.HasCeiling)
				assert.Equal(t, tt.wantRisk, st.Risk)
				assert.True(t, st.ConsumedValue.Equal(money(850_000)))
			}
		})
	}
}
