package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/life2you_mini/tradedash/internal/model"
)

// fileState 会话文件内容
type fileState struct {
	Session  *Session       `yaml:"session,omitempty"`
	Exchange model.Exchange `yaml:"selected_exchange,omitempty"`
}

// FileStore 基于本地yaml文件的会话存储，相当于浏览器的localStorage
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
	state  fileState
}

// NewFileStore 创建文件会话存储，文件不存在时视为空会话
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("创建会话目录失败: %w", err)
	}

	s := &FileStore{path: path, logger: logger}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("读取会话文件失败: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.state); err != nil {
		// 文件损坏时丢弃旧会话，等同于未登录
		logger.Warn("会话文件解析失败，已忽略", zap.String("path", path), zap.Error(err))
		s.state = fileState{}
	}
	return s, nil
}

func (s *FileStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Session == nil {
		return "", nil
	}
	return s.state.Session.Token, nil
}

func (s *FileStore) User(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Session == nil {
		return nil, ErrNoSession
	}
	user := s.state.Session.User
	return &user, nil
}

func (s *FileStore) SetSession(ctx context.Context, token string, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Session = &Session{Token: token, User: user}
	return s.persist(next)
}

func (s *FileStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Session = nil
	return s.persist(next)
}

func (s *FileStore) SelectedExchange(ctx context.Context) (model.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Exchange, nil
}

func (s *FileStore) SetSelectedExchange(ctx context.Context, exchange model.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	next.Exchange = exchange
	return s.persist(next)
}

func (s *FileStore) Close() error { return nil }

// persist 先写临时文件再rename，文件内容要么是旧状态要么是新状态
func (s *FileStore) persist(next fileState) error {
	data, err := yaml.Marshal(&next)
	if err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("创建临时会话文件失败: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入会话文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("写入会话文件失败: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("替换会话文件失败: %w", err)
	}

	s.state = next
	return nil
}
