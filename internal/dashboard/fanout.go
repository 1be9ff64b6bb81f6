package dashboard

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

// task 一个面板的获取，成功时返回应用结果的函数
type task struct {
	panel string
	fetch func(ctx context.Context) (apply func(), err error)
}

type outcome struct {
	panel string
	apply func()
	err   error
}

// fetchInto 把类型化的获取函数包装成task，返回nil数据时不应用
func fetchInto[T any](panel string, get func(ctx context.Context) (*T, error), set func(*T)) task {
	return task{
		panel: panel,
		fetch: func(ctx context.Context) (func(), error) {
			v, err := get(ctx)
			if err != nil {
				return nil, err
			}
			if v == nil {
				return nil, nil
			}
			return func() { set(v) }, nil
		},
	}
}

// fanOut 并发执行所有task并等待全部完成，单个task的panic记为该面板的错误，不影响其他结果
func fanOut(ctx context.Context, logger *zap.Logger, tasks []task) []outcome {
	results := make([]outcome, len(tasks))
	var wg conc.WaitGroup
	for i, t := range tasks {
		i, t := i, t
		results[i].panel = t.panel
		wg.Go(func() {
			var pc panics.Catcher
			pc.Try(func() {
				results[i].apply, results[i].err = t.fetch(ctx)
			})
			if r := pc.Recovered(); r != nil {
				logger.Error("获取数据时发生panic", zap.String("panel", t.panel), zap.Error(r.AsError()))
				results[i].apply = nil
				results[i].err = fmt.Errorf("panic: %v", r.Value)
			}
		})
	}
	wg.Wait()
	return results
}

// generations 轮询代数，旧一代的结果不会覆盖新一代已应用的结果。调用方持有视图锁
type generations struct {
	next    uint64
	applied map[string]uint64
	closed  bool
}

func (g *generations) begin() uint64 {
	g.next++
	return g.next
}

func (g *generations) accept(panel string, gen uint64) bool {
	if g.closed || gen < g.applied[panel] {
		return false
	}
	if g.applied == nil {
		g.applied = make(map[string]uint64)
	}
	g.applied[panel] = gen
	return true
}

// stale 已关闭或已有更新的结果
func (g *generations) stale(panel string, gen uint64) bool {
	return g.closed || gen < g.applied[panel]
}

// panelErrors 每个面板最近一次失败的原因
type panelErrors map[string]string

func (e panelErrors) copy() map[string]string {
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// applyOutcomes 逐个应用成功的结果，失败的只记录错误。调用方持有视图锁
func applyOutcomes(gens *generations, errs panelErrors, gen uint64, results []outcome, logger *zap.Logger) int {
	applied := 0
	for _, r := range results {
		if r.err != nil {
			if !gens.stale(r.panel, gen) {
				errs[r.panel] = r.err.Error()
			}
			logger.Warn("获取面板数据失败", zap.String("panel", r.panel), zap.Error(r.err))
			continue
		}
		if r.apply == nil || !gens.accept(r.panel, gen) {
			continue
		}
		r.apply()
		delete(errs, r.panel)
		applied++
	}
	return applied
}
