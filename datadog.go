package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

type metricsSubmitter interface {
	SubmitMetrics(ctx context.Context, body datadogV2.MetricPayload, o ...datadogV2.SubmitMetricsOptionalParameters) (datadogV2.IntakePayloadAccepted, *http.Response, error)
}

func newDatadogMetricsAPI() metricsSubmitter {
	configuration := datadog.NewConfiguration()
	apiClient := datadog.NewAPIClient(configuration)
	return datadogV2.NewMetricsApi(apiClient)
}

// SubmitRecord mirrors a record to Datadog as gauges. Credentials come from
// DD_API_KEY and DD_SITE.
func SubmitRecord(ctx context.Context, api metricsSubmitter, record *Record) error {
	ctx = datadog.NewDefaultContext(ctx)

	timestamp := datadog.PtrInt64(record.Timestamp.unix())
	tags := []string{"probe_id:" + strconv.Itoa(record.ProbeID)}
	_, _, err := api.SubmitMetrics(ctx, datadogV2.MetricPayload{
		Series: []datadogV2.MetricSeries{
			{
				Metric: "sensor.probe.temperature",
				Type:   datadogV2.METRICINTAKETYPE_GAUGE.Ptr(),
				Unit:   datadog.PtrString("degree celsius"),
				Tags:   tags,
				Points: []datadogV2.MetricPoint{
					{
						Timestamp: timestamp,
						Value:     datadog.PtrFloat64(float64(record.Temperature)),
					},
				},
			},
			{
				Metric: "sensor.probe.humidity",
				Type:   datadogV2.METRICINTAKETYPE_GAUGE.Ptr(),
				Unit:   datadog.PtrString("percent"),
				Tags:   tags,
				Points: []datadogV2.MetricPoint{
					{
						Timestamp: timestamp,
						Value:     datadog.PtrFloat64(float64(record.Humidity)),
					},
				},
			},
		},
	})
	if err != nil {
		return err
	}

	return nil
}
