package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"weatherlog/manager"
)

// ErrNoRecords is returned when an aggregate is requested over nothing.
var ErrNoRecords = errors.New("no records to aggregate")

// Summary holds the averages of an aggregate report.
// Humidity averages are truncated toward zero.
type Summary struct {
	UserTemperature      float64
	ReferenceTemperature float64
	UserHumidity         int
	ReferenceHumidity    int
	Count                int
}

func Difference(userValue, referenceValue float64) float64 {
	return userValue - referenceValue
}

// Summarize averages records. It fails with ErrNoRecords on an empty slice.
func Summarize(records []manager.Record) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrNoRecords
	}

	var (
		sumUserTemp float64
		sumRefTemp  float64
		sumUserHum  float64
		sumRefHum   float64
	)

	for _, r := range records {
		sumUserTemp += r.UserTemperature
		sumRefTemp += r.ReferenceTemperature
		sumUserHum += float64(r.UserHumidity)
		sumRefHum += float64(r.ReferenceHumidity)
	}

	n := float64(len(records))

	return Summary{
		UserTemperature:      sumUserTemp / n,
		ReferenceTemperature: sumRefTemp / n,
		UserHumidity:         int(sumUserHum / n),
		ReferenceHumidity:    int(sumRefHum / n),
		Count:                len(records),
	}, nil
}

func New(referenceName string) *generator {
	return &generator{
		name: referenceName,
	}
}

type generator struct {
	name string
}

func (g generator) Day(w io.Writer, record manager.Record) error {
	tempDiff := Difference(record.UserTemperature, record.ReferenceTemperature)
	humidityDiff := record.UserHumidity - record.ReferenceHumidity

	_, err := fmt.Fprintf(w,
		"Day Report:\n"+
			"User Temperature: %s°C, %s Temperature: %s°C, Difference: %s°C\n"+
			"User Humidity: %d%%, %s Humidity: %d%%, Difference: %d%%\n",
		formatFloat(record.UserTemperature), g.name, formatFloat(record.ReferenceTemperature), formatFloat(tempDiff),
		record.UserHumidity, g.name, record.ReferenceHumidity, humidityDiff,
	)

	return err
}

func (g generator) Aggregate(w io.Writer, label string, records []manager.Record) error {
	summary, err := Summarize(records)
	if err != nil {
		return fmt.Errorf("%s report: %w", label, err)
	}

	_, err = fmt.Fprintf(w,
		"%s Report:\n"+
			"Average User Temperature: %s°C, Average %s Temperature: %s°C\n"+
			"Average User Humidity: %d%%, Average %s Humidity: %d%%\n",
		label,
		formatFloat(summary.UserTemperature), g.name, formatFloat(summary.ReferenceTemperature),
		summary.UserHumidity, g.name, summary.ReferenceHumidity,
	)

	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
