package cache

import (
	"fmt"

	"petcare-route-service/internal/domain"
)

// coordKey renders a coordinate rounded to 5 decimal places (~1m), so
// lookups and writes for effectively identical points share a key.
func coordKey(c domain.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f", c.Lat, c.Lon)
}
