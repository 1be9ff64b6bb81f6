package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-contrib/sse"
	"go.uber.org/zap"

	"github.com/life2you_mini/tradedash/internal/model"
)

// LogsEvent 日志流中携带日志数组的事件名
const LogsEvent = "logs"

// ErrStreamClosed 服务端结束了日志流
var ErrStreamClosed = errors.New("日志流已结束")

// LogStream 一个长连接的系统日志推送，由调用方负责关闭
type LogStream struct {
	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once

	// 读取协程正在执行回调
	inCallback atomic.Bool
}

// Close 关闭连接并等待读取协程退出，可重复调用。
// 在onLogs/onError回调里调用时只取消不等待，读取协程在回调返回后退出
func (s *LogStream) Close() {
	if s == nil {
		return
	}
	s.closeOnce.Do(s.cancel)
	if s.inCallback.Load() {
		return
	}
	<-s.done
}

// callback 标记回调期间
func (s *LogStream) callback(fn func()) {
	s.inCallback.Store(true)
	defer s.inCallback.Store(false)
	fn()
}

// Done 读取协程退出时关闭
func (s *LogStream) Done() <-chan struct{} {
	return s.done
}

// StreamLogs 打开日志事件流。每个logs事件的日志数组推送给onLogs，
// 传输错误和流结束交给onError，不做重连
func (c *Client) StreamLogs(ctx context.Context, onLogs func([]model.SystemLogEntry), onError func(error)) (*LogStream, error) {
	streamCtx, cancel := context.WithCancel(ctx)

	httpReq, err := http.NewRequestWithContext(streamCtx, http.MethodGet, c.baseURL+c.streamPath, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("创建日志流请求失败: %w", err)
	}
	c.setHeaders(streamCtx, httpReq)
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(httpReq)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("连接日志流失败: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		if resp.StatusCode == http.StatusUnauthorized {
			c.invalidateSession(ctx)
		}
		return nil, &Error{Status: resp.StatusCode, Detail: errorDetail(raw, resp.StatusCode)}
	}

	stream := &LogStream{cancel: cancel, done: make(chan struct{})}
	logger := c.logger.With(zap.String("stream", c.streamPath))
	logger.Info("日志流已连接")

	go func() {
		defer close(stream.done)
		defer resp.Body.Close()

		err := readFrames(resp.Body, func(frame []byte) {
			stream.callback(func() { dispatchFrame(frame, onLogs, logger) })
		})

		// 调用方主动关闭不算错误
		if streamCtx.Err() != nil {
			logger.Info("日志流已关闭")
			return
		}
		if err == nil {
			err = ErrStreamClosed
		}
		logger.Warn("日志流中断", zap.Error(err))
		if onError != nil {
			stream.callback(func() { onError(err) })
		}
	}()

	return stream, nil
}

// readFrames 按空行切分事件帧，正常读到EOF时返回nil
func readFrames(r io.Reader, onFrame func([]byte)) error {
	reader := bufio.NewReader(r)
	var frame bytes.Buffer

	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			if strings.TrimRight(line, "\r\n") == "" {
				if frame.Len() > 0 {
					onFrame(frame.Bytes())
					frame.Reset()
				}
			} else {
				frame.WriteString(line)
			}
		}

		if err != nil {
			if frame.Len() > 0 {
				onFrame(frame.Bytes())
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// dispatchFrame 解码一个事件帧，只处理logs事件；解析失败的帧记录后跳过
func dispatchFrame(frame []byte, onLogs func([]model.SystemLogEntry), logger *zap.Logger) {
	normalized := bytes.ReplaceAll(frame, []byte("\r\n"), []byte("\n"))
	// 结尾补一个空行，保证最后一个事件被派发
	events, err := sse.Decode(bytes.NewReader(append(normalized, '\n')))
	if err != nil {
		logger.Warn("解码日志事件失败", zap.Error(err))
		return
	}

	for _, ev := range events {
		if ev.Event != LogsEvent {
			continue
		}
		data, ok := ev.Data.(string)
		if !ok {
			continue
		}

		var logs []model.SystemLogEntry
		if err := json.Unmarshal([]byte(data), &logs); err != nil {
			logger.Warn("解析日志数据失败", zap.Error(err))
			continue
		}
		if onLogs != nil {
			onLogs(logs)
		}
	}
}
