package analytics

import (
	"github.com/fbz-tec/skytrack/core/config"
	"github.com/fbz-tec/skytrack/core/db"
)

// Query holds one statement per SQL dialect. An empty SQLite variant means
// the PostgreSQL text runs unchanged on both.
type Query struct {
	Postgres string
	SQLite   string
}

// For returns the statement for the given store dialect.
func (q Query) For(dialect string) string {
	if dialect == db.DialectSQLite && q.SQLite != "" {
		return q.SQLite
	}
	return q.Postgres
}

var (
	tableInventoryQuery = Query{
		Postgres: `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name`,
		SQLite: `
		SELECT name AS table_name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`,
	}

	flightsPerAirlineQuery = Query{Postgres: `
		SELECT
			airline_id,
			COUNT(*) AS total_flights
		FROM flights
		GROUP BY airline_id
		ORDER BY total_flights DESC`}

	bookingPriceStatsQuery = Query{Postgres: `
		SELECT
			status,
			COUNT(*) AS bookings_count,
			AVG(price) AS avg_price,
			MIN(price) AS min_price,
			MAX(price) AS max_price
		FROM booking
		GROUP BY status
		ORDER BY status`}

	// airline -> flights -> airport
	airlineShareQuery = Query{Postgres: `
		SELECT
			a.airline_name AS airline,
			COUNT(DISTINCT f.flight_id) AS flight_count,
			COUNT(DISTINCT ap.airport_id) AS airports_served
		FROM airline a
		JOIN flights f ON a.airline_id = f.airline_id
		JOIN airport ap ON f.departure_airport_id = ap.airport_id
		GROUP BY a.airline_name
		ORDER BY COUNT(DISTINCT f.flight_id) DESC
		LIMIT 8`}

	// booking -> booking_flight -> flights
	platformVolumeQuery = Query{Postgres: `
		SELECT
			b.booking_platform AS platform,
			COUNT(b.booking_id) AS booking_count,
			ROUND(AVG(b.price), 2) AS avg_price
		FROM booking b
		JOIN booking_flight bf ON b.booking_id = bf.booking_id
		JOIN flights f ON bf.flight_id = f.flight_id
		GROUP BY b.booking_platform
		ORDER BY COUNT(b.booking_id) DESC
		LIMIT 10`}

	// airport -> flights -> airline
	busiestAirportsQuery = Query{Postgres: `
		SELECT
			ap.airport_name AS airport,
			ap.city AS city,
			COUNT(DISTINCT f.flight_id) AS flight_count,
			COUNT(DISTINCT a.airline_id) AS airlines_count
		FROM airport ap
		LEFT JOIN flights f ON (ap.airport_id = f.departure_airport_id OR ap.airport_id = f.arrival_airport_id)
		LEFT JOIN airline a ON f.airline_id = a.airline_id
		GROUP BY ap.airport_name, ap.city
		HAVING COUNT(DISTINCT f.flight_id) > 0
		ORDER BY COUNT(DISTINCT f.flight_id) DESC
		LIMIT 15`}

	// flights -> airline -> airport
	flightStatusQuery = Query{Postgres: `
		SELECT
			f.status AS flight_status,
			COUNT(f.flight_id) AS flight_count,
			COUNT(DISTINCT a.airline_id) AS airlines_count,
			COUNT(DISTINCT ap.airport_id) AS airports_count
		FROM flights f
		JOIN airline a ON f.airline_id = a.airline_id
		JOIN airport ap ON f.departure_airport_id = ap.airport_id
		GROUP BY f.status
		ORDER BY f.status`}

	// booking -> booking_flight -> flights
	ticketPriceQuery = Query{Postgres: `
		SELECT
			b.price AS ticket_price
		FROM booking b
		JOIN booking_flight bf ON b.booking_id = bf.booking_id
		JOIN flights f ON bf.flight_id = f.flight_id
		WHERE b.price > 0`}

	// baggage -> booking -> booking_flight -> flights
	baggagePriceQuery = Query{Postgres: `
		SELECT
			bag.weight_in_kg AS baggage_weight,
			b.price AS ticket_price
		FROM baggage bag
		JOIN booking b ON bag.booking_id = b.booking_id
		JOIN booking_flight bf ON b.booking_id = bf.booking_id
		JOIN flights f ON bf.flight_id = f.flight_id
		WHERE bag.weight_in_kg > 0 AND b.price > 0
		LIMIT 200`}

	timelineQuery = Query{
		Postgres: `
		SELECT
			a.airline_name AS airline,
			f.status AS flight_status,
			TO_CHAR(f.scheduled_departure, 'YYYY-MM') AS month,
			COUNT(f.flight_id) AS flight_count
		FROM airline a
		JOIN flights f ON a.airline_id = f.airline_id
		WHERE f.scheduled_departure IS NOT NULL
		GROUP BY a.airline_name, f.status, TO_CHAR(f.scheduled_departure, 'YYYY-MM')
		ORDER BY TO_CHAR(f.scheduled_departure, 'YYYY-MM'), a.airline_name`,
		SQLite: `
		SELECT
			a.airline_name AS airline,
			f.status AS flight_status,
			strftime('%Y-%m', f.scheduled_departure) AS month,
			COUNT(f.flight_id) AS flight_count
		FROM airline a
		JOIN flights f ON a.airline_id = f.airline_id
		WHERE f.scheduled_departure IS NOT NULL
		GROUP BY a.airline_name, f.status, strftime('%Y-%m', f.scheduled_departure)
		ORDER BY strftime('%Y-%m', f.scheduled_departure), a.airline_name`,
	}

	demoFlightQuery = Query{
		Postgres: `
		INSERT INTO flights (airline_id, departure_airport_id, arrival_airport_id,
			status, scheduled_departure, scheduled_arrival, flight_no)
		VALUES (1, 1, 2, 'Scheduled', CURRENT_DATE, CURRENT_DATE + INTERVAL '2 hours', $1)
		RETURNING flight_id`,
		SQLite: `
		INSERT INTO flights (flight_id, airline_id, departure_airport_id, arrival_airport_id,
			status, scheduled_departure, scheduled_arrival, flight_no)
		VALUES ((SELECT COALESCE(MAX(flight_id), 0) + 1 FROM flights), 1, 1, 2, 'Scheduled',
			date('now'), datetime(date('now'), '+2 hours'), ?)
		RETURNING flight_id`,
	}
)

// Sheet names of the default Excel export.
const (
	SheetAirlines = "Airlines_Performance"
	SheetAirports = "Airport_Traffic"
	SheetBookings = "Booking_Summary"
)

// DefaultSheets are exported when the report config names no sheets.
// The queries run unchanged on PostgreSQL and SQLite.
func DefaultSheets() []config.SheetQuery {
	return []config.SheetQuery{
		{Name: SheetAirlines, Query: `
		SELECT
			a.airline_name AS "Airline Name",
			COUNT(f.flight_id) AS "Total Flights",
			COUNT(DISTINCT f.departure_airport_id) AS "Airports Served"
		FROM airline a
		LEFT JOIN flights f ON a.airline_id = f.airline_id
		GROUP BY a.airline_name
		ORDER BY COUNT(f.flight_id) DESC`},
		{Name: SheetAirports, Query: `
		SELECT
			ap.airport_name AS "Airport Name",
			ap.city AS "City",
			COUNT(DISTINCT f.flight_id) AS "Flight Count",
			COUNT(DISTINCT a.airline_id) AS "Airlines Operating"
		FROM airport ap
		LEFT JOIN flights f ON (ap.airport_id = f.departure_airport_id OR ap.airport_id = f.arrival_airport_id)
		LEFT JOIN airline a ON f.airline_id = a.airline_id
		GROUP BY ap.airport_name, ap.city
		ORDER BY COUNT(DISTINCT f.flight_id) DESC`},
		{Name: SheetBookings, Query: `
		SELECT
			b.booking_platform AS "Platform",
			COUNT(*) AS "Bookings",
			ROUND(AVG(b.price), 2) AS "Avg Price",
			ROUND(MIN(b.price), 2) AS "Min Price",
			ROUND(MAX(b.price), 2) AS "Max Price"
		FROM booking b
		JOIN booking_flight bf ON b.booking_id = bf.booking_id
		GROUP BY b.booking_platform
		ORDER BY COUNT(*) DESC`},
	}
}
