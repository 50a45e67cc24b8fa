package xbytes

import (
	"fmt"
	"math"
)

var (
	metricLabels = [9]string{"B", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}
	binaryLabels = [9]string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}

	// 各精度档位下的舍入偏移：低于 step-offset 才接受当前单位，
	// 防止 1023.95 被格式化成 "1024.0 KiB" 而不是 "1.0 MiB"。
	precisionOffsets = [4]float64{0.5, 0.05, 0.005, 0.0005}
)

// Humanize 将字节数转换为人类可读的字符串表示。
//
// metric 为 true 时使用十进制单位（kB/MB/GB，步进 1000），
// 否则使用二进制单位（KiB/MiB/GiB，步进 1024）。
// precision 是小数位数，取值 0-3。
// 负数带负号输出；NaN 和 Inf 返回 [ErrNotANumber]。
//
//	Humanize(1536, false, 1)  // "1.5 KiB"
//	Humanize(1536, true, 1)   // "1.5 kB"
func Humanize(num float64, metric bool, precision int) (string, error) {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return "", ErrNotANumber
	}
	if precision < 0 || precision > 3 {
		return "", fmt.Errorf("%w: %d", ErrPrecision, precision)
	}

	labels := binaryLabels
	step := 1024.0
	if metric {
		labels = metricLabels
		step = 1000.0
	}
	// 当前精度下会被舍入进下一个单位的数值一律提前升档
	thresh := step - precisionOffsets[precision]

	sign := ""
	if math.Signbit(num) {
		sign = "-"
	}
	num = math.Abs(num)

	unit := labels[0]
	for i, label := range labels {
		unit = label
		if num < thresh {
			break
		}
		if i < len(labels)-1 {
			// 连续除法会累积浮点误差，但误差被不断推向更低的小数位，
			// 对 0-3 位精度的输出没有影响
			num /= step
		}
	}

	return fmt.Sprintf("%s%.*f %s", sign, precision, num, unit), nil
}
