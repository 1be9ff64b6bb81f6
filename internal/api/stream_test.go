package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/life2you_mini/tradedash/internal/model"
)

type logCollector struct {
	mu      sync.Mutex
	batches [][]model.SystemLogEntry
	errs    []error
}

func (l *logCollector) onLogs(logs []model.SystemLogEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.batches = append(l.batches, logs)
}

func (l *logCollector) onError(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func (l *logCollector) snapshot() ([][]model.SystemLogEntry, []error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([][]model.SystemLogEntry(nil), l.batches...), append([]error(nil), l.errs...)
}

func TestStreamLogs_DeliversLogsEvents(t *testing.T) {
	client, store := newTestClient(t, func(r *gin.Engine) {
		r.GET("/api/trading/logs", func(c *gin.Context) {
			assert.Equal(t, "text/event-stream", c.GetHeader("Accept"))
			assert.Equal(t, "Bearer tok", c.GetHeader("Authorization"))

			c.SSEvent("logs", []gin.H{{"id": 1, "level": "INFO", "message": "매수 실행 KRW-BTC", "created_at": "2024-05-01T09:00:00"}})
			c.SSEvent("ping", "keepalive")
			// 无法解析的数据被跳过
			c.Writer.WriteString("event:logs\ndata:{not json\n\n")
			c.SSEvent("logs", []gin.H{{"id": 2, "level": "ERROR", "message": "청산 실패", "created_at": "2024-05-01T09:01:00"}})
			c.Writer.Flush()
		})
	})
	login(t, store, "tok")

	collector := &logCollector{}
	stream, err := client.StreamLogs(context.Background(), collector.onLogs, collector.onError)
	require.NoError(t, err)

	select {
	case <-stream.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("日志流没有结束")
	}
	stream.Close()

	batches, errs := collector.snapshot()
	require.Len(t, batches, 2)
	assert.Equal(t, int64(1), batches[0][0].ID)
	assert.Equal(t, "청산 실패", batches[1][0].Message)

	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], ErrStreamClosed))
}

func TestStreamLogs_CloseIsCallerOwned(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.GET("/api/trading/logs", func(c *gin.Context) {
			c.SSEvent("logs", []gin.H{})
			c.Writer.Flush()
			<-c.Request.Context().Done()
		})
	})

	collector := &logCollector{}
	stream, err := client.StreamLogs(context.Background(), collector.onLogs, collector.onError)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		batches, _ := collector.snapshot()
		return len(batches) == 1
	}, 5*time.Second, 10*time.Millisecond)

	stream.Close()
	stream.Close()

	_, errs := collector.snapshot()
	assert.Empty(t, errs)
}

func TestStreamLogs_CloseInsideCallback(t *testing.T) {
	tests := []struct {
		name     string
		endEarly bool // 服务端发完一个事件就结束，触发onError
	}{
		{name: "在onLogs里关闭"},
		{name: "在onError里关闭", endEarly: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(r *gin.Engine) {
				r.GET("/api/trading/logs", func(c *gin.Context) {
					c.SSEvent("logs", []gin.H{{"id": 1, "message": "감시종목 변경"}})
					c.Writer.Flush()
					if !tt.endEarly {
						<-c.Request.Context().Done()
					}
				})
			})

			streams := make(chan *LogStream, 1)
			closed := make(chan struct{})
			closeStream := func() {
				(<-streams).Close()
				close(closed)
			}
			onLogs := func([]model.SystemLogEntry) {
				if !tt.endEarly {
					closeStream()
				}
			}
			onError := func(error) {
				if tt.endEarly {
					closeStream()
				}
			}

			stream, err := client.StreamLogs(context.Background(), onLogs, onError)
			require.NoError(t, err)
			streams <- stream

			select {
			case <-closed:
			case <-time.After(5 * time.Second):
				t.Fatal("回调里的Close没有返回")
			}
			select {
			case <-stream.Done():
			case <-time.After(5 * time.Second):
				t.Fatal("读取协程没有退出")
			}
			// 外部再次关闭立即返回
			stream.Close()
		})
	}
}

func TestStreamLogs_RejectedConnection(t *testing.T) {
	client, _ := newTestClient(t, func(r *gin.Engine) {
		r.GET("/api/trading/logs", func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "stream disabled"})
		})
	})

	stream, err := client.StreamLogs(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Nil(t, stream)
	assert.Equal(t, "stream disabled", err.Error())
}

func TestReadFrames(t *testing.T) {
	input := "event:logs\ndata:[]\n\n\r\nevent:a\r\ndata:1\r\n\r\nevent:tail\ndata:x"
	var frames []string
	err := readFrames(strings.NewReader(input), func(frame []byte) {
		frames = append(frames, string(frame))
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"event:logs\ndata:[]\n",
		"event:a\r\ndata:1\r\n",
		"event:tail\ndata:x",
	}, frames)
}
