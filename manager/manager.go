package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const (
	Week  = "Week"
	Month = "Month"
)

// Reporter renders records as text.
type Reporter interface {
	Day(w io.Writer, record Record) error
	Aggregate(w io.Writer, label string, records []Record) error
}

type Options struct {
	LogPath      string
	WeekSamples  int
	MonthSamples int
}

func New(fetcher Fetcher, journal Journal, reporter Reporter, options Options) *Manager {
	return &Manager{
		fetcher:  fetcher,
		journal:  journal,
		reporter: reporter,
		options:  options,
		logger:   log.New(io.Discard),
		now:      time.Now,
	}
}

// Manager runs one observation session: it reads the user's numbers, pulls
// reference readings, fills the journal and prints the reports.
type Manager struct {
	fetcher  Fetcher
	journal  Journal
	reporter Reporter
	options  Options
	logger   *log.Logger
	now      func() time.Time
}

func (m *Manager) SetLogger(logger *log.Logger) {
	m.logger = logger
}

func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// FetchReference asks the reference service for one reading. Transport
// failures and non-success statuses are logged and yield a zero reading;
// a malformed body or a cancelled context is returned to the caller.
func (m *Manager) FetchReference(ctx context.Context) (Record, error) {
	reading, err := m.fetcher.Get(ctx)
	if err == nil {
		return reading.Record(), nil
	}

	if errors.Is(err, ErrMalformedResponse) {
		return Record{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Record{}, ctxErr
	}

	m.logger.Error("failed to fetch data from the reference service", "err", err)

	return Record{}, nil
}

func (m *Manager) Run(ctx context.Context, prompter Prompter, out io.Writer) error {
	fmt.Fprintln(out, "Type in your weather measurements for today:")

	temperature, err := prompter.ReadFloat("Temperature (°C): ")
	if err != nil {
		return fmt.Errorf("temperature: %w", err)
	}

	humidity, err := prompter.ReadInt("Humidity (%): ")
	if err != nil {
		return fmt.Errorf("humidity: %w", err)
	}

	reference, err := m.FetchReference(ctx)
	if err != nil {
		return err
	}

	today := NewRecord(m.now(), Observation{Temperature: temperature, Humidity: humidity}, Reading{
		Temperature: reference.ReferenceTemperature,
		Humidity:    reference.ReferenceHumidity,
	})

	m.journal.Append(today)
	if err = m.journal.Persist(m.options.LogPath); err != nil {
		return err
	}
	m.logger.Info("weather log saved", "path", m.options.LogPath)

	if err = m.reporter.Day(out, today); err != nil {
		return err
	}

	if err = m.sample(ctx, out, Week, m.options.WeekSamples); err != nil {
		return err
	}

	return m.sample(ctx, out, Month, m.options.MonthSamples)
}

// sample collects n readings one after another, appends them to the
// journal and prints the aggregate for that window only.
func (m *Manager) sample(ctx context.Context, out io.Writer, label string, n int) error {
	records := make([]Record, 0, n)

	for i := 0; i < n; i++ {
		record, err := m.FetchReference(ctx)
		if err != nil {
			return fmt.Errorf("%s sample %d: %w", label, i+1, err)
		}
		records = append(records, record)
	}
	m.logger.Debug("collected samples", "window", label, "count", len(records))

	m.journal.Append(records...)

	return m.reporter.Aggregate(out, label, records)
}
