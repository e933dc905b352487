package postgres

// SQL for the catalog tables. Writes run inside the unit of work's
// transaction; the summary query is prepared once on the pool.

const (
	// querySchemaExists checks the tables created by the baseline migration.
	querySchemaExists = `
		SELECT COUNT(*) = 4
		FROM information_schema.tables
		WHERE table_name IN ('base_events', 'events', 'zones', 'event_summaries')
	`

	// querySelectBaseEventForUpdate locks the base event row so two cycles
	// cannot reconcile the same base event concurrently.
	querySelectBaseEventForUpdate = `
		SELECT base_event_id, sell_mode, title
		FROM base_events
		WHERE base_event_id = $1
		FOR UPDATE
	`

	querySelectEventsByBaseEvent = `
		SELECT id, event_id, base_event_id,
			event_start_date, event_end_date, sell_from, sell_to, sold_out
		FROM events
		WHERE base_event_id = $1
		ORDER BY event_id ASC
	`

	querySelectZonesByBaseEvent = `
		SELECT z.id, z.zone_id, z.capacity, z.price, z.name, z.numbered, z.event_id
		FROM zones z
		JOIN events e ON e.id = z.event_id
		WHERE e.base_event_id = $1
		ORDER BY z.event_id ASC, z.zone_id ASC
	`

	querySelectSummariesByBaseEvent = `
		SELECT s.event_id, s.title, s.start_date, s.end_date, s.min_price, s.max_price
		FROM event_summaries s
		JOIN events e ON e.id = s.event_id
		WHERE e.base_event_id = $1
	`

	queryInsertBaseEvent = `
		INSERT INTO base_events (base_event_id, sell_mode, title)
		VALUES ($1, $2, $3)
	`

	queryUpdateBaseEvent = `
		UPDATE base_events
		SET sell_mode = $2, title = $3
		WHERE base_event_id = $1
	`

	queryInsertEvent = `
		INSERT INTO events (
			id, event_id, base_event_id,
			event_start_date, event_end_date, sell_from, sell_to, sold_out
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	queryUpdateEvent = `
		UPDATE events
		SET event_start_date = $2, event_end_date = $3,
			sell_from = $4, sell_to = $5, sold_out = $6
		WHERE id = $1
	`

	queryInsertZone = `
		INSERT INTO zones (id, zone_id, capacity, price, name, numbered, event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	queryUpdateZone = `
		UPDATE zones
		SET capacity = $2, price = $3, name = $4, numbered = $5
		WHERE id = $1
	`

	queryDeleteZone = `DELETE FROM zones WHERE id = $1`

	queryInsertSummary = `
		INSERT INTO event_summaries (event_id, title, start_date, end_date, min_price, max_price)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	queryUpdateSummary = `
		UPDATE event_summaries
		SET title = $2, start_date = $3, end_date = $4, min_price = $5, max_price = $6
		WHERE event_id = $1
	`

	queryDeleteSummary = `DELETE FROM event_summaries WHERE event_id = $1`

	// queryRangeSummaries applies each bound only when it is non-NULL.
	queryRangeSummaries = `
		SELECT event_id, title, start_date, end_date, min_price, max_price
		FROM event_summaries
		WHERE ($1::timestamptz IS NULL OR start_date >= $1)
			AND ($2::timestamptz IS NULL OR end_date <= $2)
		ORDER BY start_date ASC, event_id ASC
	`
)
