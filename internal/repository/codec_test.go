package repository

import (
	"testing"

	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecimalCodec_RoundTrip(t *testing.T) {
	reg := newRegistry()
	in := contractform.OrderItem{
		ProductID: "p1",
		UnitPrice: decimal.RequireFromString("1234.5678"),
		Discount: pricing.Discount{
			Type:       pricing.DiscountPercentage,
			Percentage: decimal.RequireFromString("33.333333333333"),
		},
	}

	raw, err := bson.MarshalWithRegistry(reg, in)
	require.NoError(t, err)

	price, ok := bson.Raw(raw).Lookup("unit_price").StringValueOK()
	require.True(t, ok, "decimals are stored as strings")
	assert.Equal(t, "1234.5678", price)

	var out contractform.OrderItem
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, in.UnitPrice.Equal(out.UnitPrice))
	assert.True(t, in.Discount.Percentage.Equal(out.Discount.Percentage))
}

func TestDecimalCodec_NumericInputs(t *testing.T) {
	reg := newRegistry()
	d128, err := primitive.ParseDecimal128("10.25")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "double", value: 2.5, want: "2.5"},
		{name: "int32", value: int32(7), want: "7"},
		{name: "int64", value: int64(9000000000), want: "9000000000"},
		{name: "decimal128", value: d128, want: "10.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := bson.Marshal(bson.M{"unit_price": tt.value})
			require.NoError(t, err)

			var out contractform.OrderItem
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(out.UnitPrice), out.UnitPrice.String())
		})
	}
}

func TestDecimalCodec_RejectsOtherTypes(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"unit_price": true})
	require.NoError(t, err)

	var out contractform.OrderItem
	assert.Error(t, bson.UnmarshalWithRegistry(newRegistry(), raw, &out))
}
