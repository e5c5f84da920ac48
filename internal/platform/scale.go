package platform

import (
	"os"
	"strconv"
	"strings"
)

// ScaleFactor resolves the UI scale factor: a positive override wins, then a
// positive integer in GDK_SCALE, then 1.
func ScaleFactor(override int) int {
	if override > 0 {
		return override
	}
	if raw := strings.TrimSpace(os.Getenv("GDK_SCALE")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
