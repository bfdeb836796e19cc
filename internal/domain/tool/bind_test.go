package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bindTarget struct {
	To       []string `json:"to" validate:"min=1,dive,email"`
	Subject  string   `json:"subject" validate:"required"`
	Quantity int      `json:"quantity" validate:"gte=1"`
	OrderID  ID       `json:"order_id"`
}

func TestBind(t *testing.T) {
	tests := []struct {
		name    string
		args    Args
		wantErr string
	}{
		{
			name: "valid",
			args: Args{"to": []any{"a@example.com"}, "subject": "Hi", "quantity": 2, "order_id": 7},
		},
		{
			name:    "missing subject",
			args:    Args{"to": []any{"a@example.com"}, "quantity": 1},
			wantErr: "subject is required",
		},
		{
			name:    "empty recipients",
			args:    Args{"to": []any{}, "subject": "Hi", "quantity": 1},
			wantErr: "to must contain at least 1 item(s)",
		},
		{
			name:    "bad address",
			args:    Args{"to": []any{"not-an-address"}, "subject": "Hi", "quantity": 1},
			wantErr: `must be a valid email address, got "not-an-address"`,
		},
		{
			name:    "quantity too small",
			args:    Args{"to": []any{"a@example.com"}, "subject": "Hi", "quantity": 0},
			wantErr: "quantity must be at least 1",
		},
		{
			name:    "wrong type",
			args:    Args{"to": []any{"a@example.com"}, "subject": 5, "quantity": 1},
			wantErr: "subject must be of type string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst bindTarget
			err := Bind(tt.args, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, ID("7"), dst.OrderID)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestID(t *testing.T) {
	var target struct {
		ID ID `json:"id"`
	}

	require.NoError(t, Bind(Args{"id": "  12 "}, &target))
	assert.Equal(t, ID("12"), target.ID)
	n, ok := target.ID.Int()
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	require.NoError(t, Bind(Args{"id": 3.0}, &target))
	assert.Equal(t, "3", target.ID.String())

	_, ok = ID("abc").Int()
	assert.False(t, ok)
	_, ok = ID("0").Int()
	assert.False(t, ok)
}
