package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("test", &buf)

	l.Debug("скрыто")
	assert.Empty(t, buf.String(), "DEBUG ниже порога консоли INFO")

	l.Info("цель %d", 42)
	assert.Contains(t, buf.String(), "[INFO] [test] цель 42")

	l.SetLevels(TRACE, TRACE)
	assert.True(t, l.Enabled(TRACE))
	l.Trace("подробно")
	assert.Contains(t, buf.String(), "[TRACE] [test] подробно")
}

func TestDefaultLogger_NoopUntilInit(t *testing.T) {
	SetDefaultLogger(nil)
	assert.NotPanics(t, func() { Info("никуда") }, "Глобальные функции безопасны без инициализации")

	var buf bytes.Buffer
	SetDefaultLogger(NewWriterLogger("default", &buf))
	defer SetDefaultLogger(nil)

	Warn("внимание")
	assert.Contains(t, buf.String(), "[WARN] [default] внимание")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestLoggerManager_ReusesComponentLogger(t *testing.T) {
	lm := GetLoggerManager()
	a := lm.MustGetLogger("unit")
	b := lm.MustGetLogger("unit")
	assert.Same(t, a, b, "Для одного компонента возвращается один логгер")
}
