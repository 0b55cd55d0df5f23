package manager

import (
	"context"
	"errors"
	"time"
)

// ErrMalformedResponse is returned by a Fetcher when the reference service
// answered 200 but the body does not carry both numeric fields.
var ErrMalformedResponse = errors.New("malformed response")

// Fetcher performs one round trip to the reference weather service.
type Fetcher interface {
	Get(ctx context.Context) (Reading, error)
}

// Prompter reads the user's own observation.
type Prompter interface {
	ReadFloat(prompt string) (float64, error)
	ReadInt(prompt string) (int, error)
}

// Journal accumulates records and writes them out.
type Journal interface {
	Append(records ...Record)
	Persist(path string) error
}

// Reading is a reference temperature/humidity pair.
type Reading struct {
	Temperature float64
	Humidity    int
}

// Record returns a fetch-only record carrying r as its reference fields.
func (r Reading) Record() Record {
	return Record{
		ReferenceTemperature: r.Temperature,
		ReferenceHumidity:    r.Humidity,
	}
}

// Observation is what the user measured.
type Observation struct {
	Temperature float64
	Humidity    int
}

// Record is one comparison point. User fields stay zero for fetch-only records.
type Record struct {
	Date                 time.Time `json:"date"`
	UserTemperature      float64   `json:"user_temperature"`
	UserHumidity         int       `json:"user_humidity"`
	ReferenceTemperature float64   `json:"reference_temperature"`
	ReferenceHumidity    int       `json:"reference_humidity"`
}

func NewRecord(date time.Time, observation Observation, reading Reading) Record {
	year, month, day := date.Date()

	return Record{
		Date:                 time.Date(year, month, day, 0, 0, 0, 0, date.Location()),
		UserTemperature:      observation.Temperature,
		UserHumidity:         observation.Humidity,
		ReferenceTemperature: reading.Temperature,
		ReferenceHumidity:    reading.Humidity,
	}
}
