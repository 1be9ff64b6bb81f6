package chart

import "github.com/life2you_mini/tradedash/internal/model"

// Align 指标第i个值对应第i根K线的时间，结果长度为 min(len(candles), len(values))
func Align(candles []model.Candle, values []float64) []Point {
	n := len(values)
	if len(candles) < n {
		n = len(candles)
	}
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{Time: candles[i].Time, Value: values[i]}
	}
	return points
}
