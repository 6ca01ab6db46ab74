package templates

import (
	"net/http"
	"strconv"
)

// Fixed2 formats a probability the way the heatmap annotates it.
func Fixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func Percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func statusText(code int) string {
	if t := http.StatusText(code); t != "" {
		return t
	}
	return "Error"
}
