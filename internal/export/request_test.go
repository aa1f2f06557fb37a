package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"empty", Request{}, ErrNoSelection},
		{"all", Request{All: true}, nil},
		{"ok", Request{Selections: []Selection{{OrderID: 1}, {OrderID: 2}}}, nil},
		{"duplicate", Request{Selections: []Selection{{OrderID: 1}, {OrderID: 1, ServiceType: "A"}}}, ErrDuplicateSelection},
		{"zero id", Request{Selections: []Selection{{OrderID: 0}}}, ErrInvalidSelection},
		{"negative id", Request{Selections: []Selection{{OrderID: -3}}}, ErrInvalidSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRequest_IDsAndOverrides(t *testing.T) {
	r := Request{Selections: []Selection{{OrderID: 5, ServiceType: "A"}, {OrderID: 2}, {OrderID: 9, ServiceType: "0"}}}

	assert.Equal(t, []int64{5, 2, 9}, r.IDs())
	assert.Equal(t, map[int64]string{5: "A", 9: "0"}, r.Overrides())
}
