package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	tests := []struct {
		level   string
		want    zap.AtomicLevel
		wantErr bool
	}{
		{level: "Info", want: zap.NewAtomicLevelAt(zap.InfoLevel)},
		{level: "debug", want: zap.NewAtomicLevelAt(zap.DebugLevel)},
		{level: "WARN", want: zap.NewAtomicLevelAt(zap.WarnLevel)},
		{level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New()
			err := l.Init(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Log.Core().Enabled(tt.want.Level()))
			assert.False(t, l.Log.Core().Enabled(tt.want.Level()-1))
		})
	}
}

func TestNewIsNop(t *testing.T) {
	l := New()
	require.NotNil(t, l.Log)
	assert.False(t, l.Log.Core().Enabled(zap.FatalLevel))
}
