package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCronExpr(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"daily prune", "15 3 * * *", false},
		{"every five minutes", "*/5 * * * *", false},
		{"too few fields", "15 3 *", true},
		{"seconds field not accepted", "0 15 3 * * *", true},
		{"garbage", "not a cron", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronExpr(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNextCronTime(t *testing.T) {
	from := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	next, err := NextCronTime("15 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 15, 0, 0, time.UTC), next)

	_, err = NextCronTime("bad", from)
	assert.Error(t, err)
}
