package metno

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"weatherlog/manager"
)

type Config struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

func New(config Config) *client {
	rc := resty.New()
	if config.Timeout > 0 {
		rc.SetTimeout(config.Timeout)
	}
	if config.UserAgent != "" {
		rc.SetHeader("User-Agent", config.UserAgent)
	}

	return &client{
		url:   config.URL,
		resty: rc,
	}
}

type client struct {
	url   string
	resty *resty.Client
}

// StatusError is returned when the service answers outside the 2xx range.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status code: %d", e.Code)
	}
	return fmt.Sprintf("status code: %d\n%s", e.Code, e.Body)
}

func (c client) Get(ctx context.Context) (manager.Reading, error) {
	response, err := c.resty.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return manager.Reading{}, fmt.Errorf("get %s: %w", c.url, err)
	}

	if response.StatusCode() < 200 || response.StatusCode() >= 300 {
		body := response.Body()

		buf := &bytes.Buffer{}
		if err = json.Indent(buf, body, "", "  "); err == nil {
			body = buf.Bytes()
		}

		return manager.Reading{}, &StatusError{Code: response.StatusCode(), Body: string(body)}
	}

	return unmarshal(response.Body())
}

// unmarshal accepts either a flat {"temperature", "humidity"} object or the
// locationforecast compact document, where the first timeseries entry is
// the current reading.
func unmarshal(data []byte) (manager.Reading, error) {
	type details struct {
		AirTemperature   *float64 `json:"air_temperature"`
		RelativeHumidity *float64 `json:"relative_humidity"`
	}

	type result struct {
		Temperature *float64 `json:"temperature"`
		Humidity    *float64 `json:"humidity"`
		Properties  struct {
			Timeseries []struct {
				Time string `json:"time"`
				Data struct {
					Instant struct {
						Details details `json:"details"`
					} `json:"instant"`
				} `json:"data"`
			} `json:"timeseries"`
		} `json:"properties"`
	}

	var r result

	if err := json.Unmarshal(data, &r); err != nil {
		return manager.Reading{}, fmt.Errorf("%w: %v", manager.ErrMalformedResponse, err)
	}

	temperature, humidity := r.Temperature, r.Humidity
	if (temperature == nil || humidity == nil) && len(r.Properties.Timeseries) > 0 {
		d := r.Properties.Timeseries[0].Data.Instant.Details
		temperature, humidity = d.AirTemperature, d.RelativeHumidity
	}

	if temperature == nil || humidity == nil {
		return manager.Reading{}, fmt.Errorf("%w: temperature and humidity are required", manager.ErrMalformedResponse)
	}

	return manager.Reading{
		Temperature: *temperature,
		Humidity:    int(*humidity),
	}, nil
}
