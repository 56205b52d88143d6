package ui

import (
	"fmt"
	"strconv"
)

// FormatInt shows an absent aggregate as "-".
func FormatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func FormatAvg(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
