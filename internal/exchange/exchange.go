package exchange

import (
	"sync"

	"github.com/life2you_mini/tradedash/internal/model"
)

// Registry 交易所注册表
type Registry struct {
	mu       sync.RWMutex
	profiles map[model.Exchange]*Profile
	order    []model.Exchange
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[model.Exchange]*Profile),
	}
}

// Register 注册交易所，重复注册时覆盖
func (r *Registry) Register(profile *Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.profiles[profile.Name]; !exists {
		r.order = append(r.order, profile.Name)
	}
	r.profiles[profile.Name] = profile
}

// Get 获取交易所
func (r *Registry) Get(name model.Exchange) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, exists := r.profiles[name]
	return profile, exists
}

// GetAll 按注册顺序返回所有交易所
func (r *Registry) GetAll() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Profile, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.profiles[name])
	}
	return result
}

// Lookup 获取交易所，未知名称回退到upbit
func (r *Registry) Lookup(name model.Exchange) *Profile {
	if profile, ok := r.Get(name); ok {
		return profile
	}
	if profile, ok := r.Get(model.ExchangeUpbit); ok {
		return profile
	}
	return Upbit()
}
