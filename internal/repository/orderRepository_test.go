package repository

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRow_ToDomain(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	r := orderRow{
		ID:           42,
		LastName:     pgtype.Text{String: "山田", Valid: true},
		Building:     pgtype.Text{},
		DeliveryDate: pgtype.Date{Time: d, Valid: true},
		TimeSlot:     pgtype.Text{String: "午前中", Valid: true},
	}

	o := r.toDomain()
	assert.Equal(t, int64(42), o.ID)
	assert.Equal(t, "山田", o.LastName)
	assert.Equal(t, "", o.Building)
	assert.Equal(t, "午前中", o.TimeSlot)
	require.NotNil(t, o.DeliveryDate)
	assert.Equal(t, d, *o.DeliveryDate)
}

func TestOrderRow_ToDomainNullAndInfinityDates(t *testing.T) {
	assert.Nil(t, orderRow{}.toDomain().DeliveryDate)

	inf := orderRow{DeliveryDate: pgtype.Date{Valid: true, InfinityModifier: pgtype.Infinity}}
	assert.Nil(t, inf.toDomain().DeliveryDate)
}

func TestText(t *testing.T) {
	assert.False(t, text("").Valid)
	v := text("x")
	assert.True(t, v.Valid)
	assert.Equal(t, "x", v.String)
}
