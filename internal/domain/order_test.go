package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "iso", in: "2024-03-05", want: "2024-03-05"},
		{name: "slashes", in: "2024/03/05", want: "2024-03-05"},
		{name: "short slashes", in: "2024/3/5", want: "2024-03-05"},
		{name: "rfc3339 keeps calendar date", in: "2024-03-05T23:30:00+09:00", want: "2024-03-05"},
		{name: "padded", in: "  2024-12-31 ", want: "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}

	for _, in := range []string{"", "   ", "tomorrow", "2024-13-01", "05/03/2024"} {
		assert.Nil(t, ParseDate(in), "input %q", in)
	}
}

func TestIntakeFormToOrder(t *testing.T) {
	f := IntakeForm{
		Customer: CustomerData{
			LastName:   "山田",
			FirstName:  "花子",
			Zipcode:    "530-0001",
			Prefecture: "大阪府",
			City:       "大阪市北区",
			Address:    "梅田1-2-3",
			Building:   "   ",
			Phone:      "090-1111-2222",
			Email:      "",
		},
		Delivery: DeliveryData{DesiredDate: "2024-03-05", DesiredTime: " "},
		Note:     "誕生日用",
	}

	o := f.ToOrder()
	assert.Equal(t, "山田", o.LastName)
	assert.Equal(t, "", o.Building)
	assert.Equal(t, "", o.Email)
	assert.Equal(t, "", o.TimeSlot)
	assert.Equal(t, "誕生日用", o.Memo)
	require.NotNil(t, o.DeliveryDate)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), *o.DeliveryDate)

	f.Delivery.DesiredDate = "someday"
	assert.Nil(t, f.ToOrder().DeliveryDate)
}

func TestIntakeFormValidate(t *testing.T) {
	ok := IntakeForm{Customer: CustomerData{LastName: "山田"}, Note: strings.Repeat("花", 1000)}
	assert.NoError(t, ok.Validate())

	bad := IntakeForm{Customer: CustomerData{Zipcode: strings.Repeat("1", 17)}}
	err := bad.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "zipcode", verrs[0].Field())
	assert.Equal(t, "max", verrs[0].Tag())
}
