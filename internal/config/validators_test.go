package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name      string
		validator Validator
		value     string
		want      string
		wantErr   bool
	}{
		{"positive int", PositiveIntValidator(), "5", "5", false},
		{"zero", PositiveIntValidator(), "0", "", true},
		{"not a number", PositiveIntValidator(), "ten", "", true},
		{"enum lowercases", EnumValidator("tsv", "bolt"), "BOLT", "bolt", false},
		{"enum rejects", EnumValidator("tsv", "bolt"), "postgres", "", true},
		{"bool yes", BoolValidator(), "yes", "true", false},
		{"bool off", BoolValidator(), "OFF", "false", false},
		{"bool garbage", BoolValidator(), "maybe", "", true},
		{"iso layout", DateLayoutValidator(), "2006-01-02", "2006-01-02", false},
		{"strftime layout", DateLayoutValidator(), "%Y-%m-%d", "", true},
		{"layout without year", DateLayoutValidator(), "Jan 2", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.validator(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumErrorListsChoices(t *testing.T) {
	_, err := EnumValidator("warn", "ignore", "abort")("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warn, ignore, abort")
}

func TestEmptyValueUsesDefault(t *testing.T) {
	setupConfigEnv(t)
	t.Setenv("CATBOT_LOGGING_LEVEL", "")

	Load()

	assert.Equal(t, "info", Get("logging_level", ""))
}
