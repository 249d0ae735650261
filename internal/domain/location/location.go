package location

import "time"

// Source identifies how a location point was obtained. Points are
// pre-filtered upstream to verifiable sources only.
type Source string

const (
	SourceGPS       Source = "gps"
	SourceCellTower Source = "cell_tower"
	SourceWiFi      Source = "wifi"
	SourcePhoto     Source = "photo"
)

// Point is a single piece of location telemetry from a device extraction.
type Point struct {
	Latitude     float64    `json:"latitude"`
	Longitude    float64    `json:"longitude"`
	LocationName string     `json:"location_name,omitempty"`
	Source       Source     `json:"source"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	PersonName   string     `json:"person_name,omitempty"`
}
