package layout

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// 1 TRX = 10^6 sun
	sunExponent = -6

	addressChunk = 16
	textChunk    = 18
)

// FormatAmountTRX 将 sun 转换为 TRX 显示，去掉多余的零: 2500000 -> "2.5 TRX"
func FormatAmountTRX(sun int64) string {
	return decimal.New(sun, sunExponent).String() + " TRX"
}

// FormatAmountToken 直接显示代币的整数数量
func FormatAmountToken(v int64) string {
	return strconv.FormatInt(v, 10)
}

// SplitAddress 按 16 个字符切分，适合地址显示
func SplitAddress(s string) []string {
	return chunks(s, addressChunk)
}

// SplitText 按 18 个字符切分普通文本
func SplitText(s string) []string {
	return chunks(s, textChunk)
}

func chunks(s string, size int) []string {
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}

	lines := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		lines = append(lines, string(runes[start:end]))
	}
	return lines
}

var parameterText = map[int64]string{
	0:  "Maintenance time interval",
	1:  "Account upgrade cost",
	2:  "Create account fee",
	3:  "Transaction fee",
	4:  "Asset issue fee",
	5:  "Witness pay per block",
	6:  "Witness standby allowance",
	7:  "Create new account fee in system contract",
	8:  "Create new account bandwidth rate",
	9:  "Allow creation of contracts",
	10: "Remove the power of GRs",
	11: "Energy fee",
	12: "Exchange create fee",
	13: "Max CPU time of one TX",
}

// ParameterText 返回链参数编号的说明，未知编号返回 "Invalid parameter"
func ParameterText(code int64) string {
	if text, ok := parameterText[code]; ok {
		return text
	}
	return "Invalid parameter"
}
