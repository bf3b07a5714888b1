package util

import (
	"fmt"
	"strings"
	"time"
)

// FormatNumber abbreviates token counts: 999, 1.5K, 2.5M.
func FormatNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	} else {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
}

func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatRemaining renders whole minutes left in a block, "0m left" once expired.
func FormatRemaining(minutes int64) string {
	if minutes <= 0 {
		return "0m left"
	}
	return FormatDuration(time.Duration(minutes)*time.Minute) + " left"
}

// FormatBurnRate renders a cost per hour.
func FormatBurnRate(perHour float64) string {
	return FormatCurrency(perHour) + "/hr"
}

// FormatCurrency renders a USD amount with two decimals and thousands separators.
func FormatCurrency(amount float64) string {
	str := fmt.Sprintf("%.2f", amount)

	sign := ""
	if strings.HasPrefix(str, "-") {
		str = str[1:]
		// -0.00 after rounding
		if strings.Trim(str, "0.") != "" {
			sign = "-"
		}
	}

	intPart, decPart, _ := strings.Cut(str, ".")

	// Add commas to integer part
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	return fmt.Sprintf("%s$%s.%s", sign, intPart, decPart)
}
