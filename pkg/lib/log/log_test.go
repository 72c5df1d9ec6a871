package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Configure(&buf, LevelInfo, "json")

	lg := Logger("core/transport/tcp")
	lg.Debug("丢弃")
	lg.Info("已监听", "addr", "/ip4/127.0.0.1/tcp/4001")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "低于级别的日志被丢弃")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "core/transport/tcp", entry["component"])
	assert.Equal(t, "/ip4/127.0.0.1/tcp/4001", entry["addr"])

	t.Log("✅ Configure 设置级别与 JSON 格式")
}

func TestConfigure_Text(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Configure(&buf, LevelDebug, "text")

	Logger("reactor").Debug("任务退出")
	assert.Contains(t, buf.String(), "component=reactor")
}
