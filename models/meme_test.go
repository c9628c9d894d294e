package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterScan(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Counter
	}{
		{name: "nil", value: nil, want: 0},
		{name: "int64", value: int64(42), want: 42},
		{name: "float", value: float64(7), want: 7},
		{name: "numeric bytes", value: []byte("15"), want: 15},
		{name: "numeric string", value: " 9 ", want: 9},
		{name: "decimal string", value: "3.9", want: 3},
		{name: "leading digits", value: "12abc", want: 12},
		{name: "garbage", value: "lots", want: 0},
		{name: "empty", value: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Counter = 99
			assert.NoError(t, c.Scan(tt.value))
			assert.Equal(t, tt.want, c)
		})
	}
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace"}).DisplayName())
	assert.Equal(t, "Ada", (&User{FirstName: "Ada"}).DisplayName())
	assert.Equal(t, "", (*User)(nil).DisplayName())
}
