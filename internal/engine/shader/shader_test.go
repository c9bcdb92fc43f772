package shader

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorMessage(t *testing.T) {
	tests := []struct {
		err  *BuildError
		want string
	}{
		{&BuildError{StageVertex, "0:3: 'vec5' : undeclared\n\x00"}, "vertex stage: 0:3: 'vec5' : undeclared"},
		{&BuildError{StageLink, ""}, "link stage: no info log"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestBuildErrorUnwrapsFromProgramErrors(t *testing.T) {
	err := fmt.Errorf("reload program: %w", &BuildError{Stage: StageFragment, InfoLog: "bad"})

	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, StageFragment, be.Stage)
}

func TestFailedLogsStage(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	err := failed(zap.New(core), StageLink, "missing main\x00")
	require.Error(t, err)

	entries := logs.FilterMessage("shader build failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "link", entries[0].ContextMap()["stage"])
}

func TestInfoLog(t *testing.T) {
	assert.Empty(t, infoLog(0, func([]byte) { t.Fatal("read with empty log") }))

	got := infoLog(4, func(b []byte) { copy(b, "err\x00") })
	assert.Equal(t, "err\x00", got)
}
