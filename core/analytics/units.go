package analytics

import (
	"fmt"

	"github.com/fbz-tec/skytrack/core/charts"
	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/montanaflynn/stats"
)

// ChartUnit is one static chart: the query feeding it and how its rows become a chart.
type ChartUnit struct {
	Name  string
	Query Query
	Joins string
	// Build turns the fetched rows into a chart and a one-line description of what it shows.
	Build func(rs *dataset.ResultSet, opts Options) (charts.Chart, string, error)
}

// File is the chart's file name inside the charts directory.
func (u ChartUnit) File() string { return u.Name + ".pdf" }

// ChartUnits lists the static charts in run order.
func ChartUnits() []ChartUnit {
	return []ChartUnit{
		{Name: "pie_chart_airlines", Query: airlineShareQuery, Joins: "airline -> flights -> airport", Build: buildAirlineShare},
		{Name: "bar_chart_platforms", Query: platformVolumeQuery, Joins: "booking -> booking_flight -> flights", Build: buildPlatformVolume},
		{Name: "horizontal_bar_airports", Query: busiestAirportsQuery, Joins: "airport -> flights -> airline", Build: buildBusiestAirports},
		{Name: "line_chart_flight_status", Query: flightStatusQuery, Joins: "flights -> airline -> airport", Build: buildFlightStatus},
		{Name: "histogram_ticket_prices", Query: ticketPriceQuery, Joins: "booking -> booking_flight -> flights", Build: buildTicketPrices},
		{Name: "scatter_plot_baggage_price", Query: baggagePriceQuery, Joins: "baggage -> booking -> booking_flight -> flights", Build: buildBaggagePrice},
	}
}

func labelsAndValues(rs *dataset.ResultSet, label, value string) ([]string, []float64, error) {
	labels, err := rs.Strings(label)
	if err != nil {
		return nil, nil, err
	}
	values, err := rs.Floats(value)
	if err != nil {
		return nil, nil, err
	}
	if len(values) != len(labels) {
		return nil, nil, fmt.Errorf("column %q has %d null values", value, len(labels)-len(values))
	}
	return labels, values, nil
}

func buildAirlineShare(rs *dataset.ResultSet, _ Options) (charts.Chart, string, error) {
	labels, values, err := labelsAndValues(rs, "airline", "flight_count")
	if err != nil {
		return nil, "", err
	}
	total, _ := stats.Sum(values)
	return charts.PieChart{
		Title:  "Flight Distribution by Airlines",
		Labels: labels,
		Values: values,
	}, fmt.Sprintf("Market share of airlines by flight count (%s total flights)", charts.FormatCount(total)), nil
}

func buildPlatformVolume(rs *dataset.ResultSet, opts Options) (charts.Chart, string, error) {
	labels, values, err := labelsAndValues(rs, "platform", "booking_count")
	if err != nil {
		return nil, "", err
	}
	return charts.BarChart{
		Title:   "Top 10 Booking Platforms by Volume",
		XLabel:  "Booking Platform",
		YLabel:  "Number of Bookings",
		Labels:  labels,
		Values:  values,
		HeatMap: opts.HeatMap,
	}, "Most popular booking platforms by volume", nil
}

func buildBusiestAirports(rs *dataset.ResultSet, opts Options) (charts.Chart, string, error) {
	airports, values, err := labelsAndValues(rs, "airport", "flight_count")
	if err != nil {
		return nil, "", err
	}
	cities, err := rs.Strings("city")
	if err != nil {
		return nil, "", err
	}
	labels := make([]string, len(airports))
	for i := range airports {
		labels[i] = fmt.Sprintf("%s (%s)", airports[i], cities[i])
	}
	return charts.BarChart{
		Title:      "Top 15 Busiest Airports by Flight Volume",
		XLabel:     "Number of Flights",
		YLabel:     "Airport",
		Labels:     labels,
		Values:     values,
		Horizontal: true,
		HeatMap:    opts.HeatMap,
	}, fmt.Sprintf("Major transportation hubs. Busiest: %s (%s flights)",
		airports[0], charts.FormatCount(values[0])), nil
}

func buildFlightStatus(rs *dataset.ResultSet, _ Options) (charts.Chart, string, error) {
	statuses, values, err := labelsAndValues(rs, "flight_status", "flight_count")
	if err != nil {
		return nil, "", err
	}
	labels := make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = charts.StatusLabel(s)
	}
	total, _ := stats.Sum(values)
	return charts.LineChart{
		Title:  "Flight Count by Status",
		XLabel: "Flight Status",
		YLabel: "Number of Flights",
		Labels: labels,
		Values: values,
	}, fmt.Sprintf("Distribution of %s flights by operational status", charts.FormatCount(total)), nil
}

func buildTicketPrices(rs *dataset.ResultSet, _ Options) (charts.Chart, string, error) {
	prices, err := rs.Floats("ticket_price")
	if err != nil {
		return nil, "", err
	}
	if len(prices) == 0 {
		return nil, "", charts.ErrNoData
	}
	data := stats.Float64Data(prices)
	lo, _ := data.Min()
	hi, _ := data.Max()
	mean, _ := data.Mean()
	return charts.Histogram{
		Title:    "Distribution of Ticket Prices",
		XLabel:   "Ticket Price ($)",
		YLabel:   "Number of Bookings",
		Values:   prices,
		Bins:     charts.DefaultBins,
		Currency: "$",
	}, fmt.Sprintf("Price distribution (Range: $%.2f-$%.2f, Avg: $%.2f)", lo, hi, mean), nil
}

func buildBaggagePrice(rs *dataset.ResultSet, _ Options) (charts.Chart, string, error) {
	weights, err := rs.Floats("baggage_weight")
	if err != nil {
		return nil, "", err
	}
	prices, err := rs.Floats("ticket_price")
	if err != nil {
		return nil, "", err
	}
	plot := charts.ScatterPlot{
		Title:  "Relationship between Baggage Weight and Ticket Price",
		XLabel: "Baggage Weight (kg)",
		YLabel: "Ticket Price ($)",
		X:      weights,
		Y:      prices,
	}
	fit, err := plot.Fit()
	if err != nil {
		return nil, "", err
	}
	return plot, fmt.Sprintf("Correlation between baggage weight and ticket price (r=%.3f)", fit.R), nil
}
