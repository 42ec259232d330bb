package constants

const (
	// ListBoardPosts is written with ? placeholders; callers Rebind for the driver.
	// The first argument is the current time: live posts that already started are
	// reported as EXPIRED before the sweep gets to them.
	ListBoardPosts = `
	SELECT * FROM (
		SELECT p.id, p.title, p.content_type, p.start_time, p.is_recurring,
		       p.server_id, s.name AS stage_name, s.tier AS stage_tier,
		       CASE WHEN p.state IN ('RECRUITING', 'RERECRUITING', 'FULL') AND p.start_time <= ?
		            THEN 'EXPIRED' ELSE p.state END AS state,
		       (SELECT COUNT(*) FROM party_find_slots sl WHERE sl.post_id = p.id) AS group_size,
		       (SELECT COUNT(*) FROM party_find_slots sl WHERE sl.post_id = p.id AND sl.character_id IS NOT NULL) AS filled
		FROM party_find_posts p
		JOIN content_stages s ON s.id = p.stage_id
	) b
	WHERE b.state IN (?)
	`

	BoardOrderLimit = `
	ORDER BY b.start_time ASC, b.id ASC
	LIMIT ?
	`
)
