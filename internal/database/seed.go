package database

import (
	"context"
	"database/sql"
	"time"
)

// seedEvent is the shape of one sample catalog entry. Offsets are days
// relative to seeding time so the catalog always contains a mix of
// upcoming and past events.
type seedEvent struct {
	name        string
	organizer   string
	location    string
	daysFromNow int
	description string
	capacity    int
	available   int
	category    string
}

var sampleEvents = []seedEvent{
	// Tech
	{"React Conference", "Bellcorp", "Hyderabad", 5, "A deep dive into React and ecosystem.", 100, 100, "Tech"},
	{"Node.js Summit", "Dev Studio", "Bangalore", 10, "Advanced Node.js patterns and practices.", 80, 80, "Tech"},
	{"Fullstack Bootcamp", "Code School", "Online", 15, "Hands-on MERN stack bootcamp.", 150, 150, "Tech"},
	{"APIs & Microservices", "CloudHub", "Hyderabad", -3, "Microservices and API best practices.", 120, 60, "Tech"},

	// Business
	{"Startup Meetup", "Bellcorp Studio", "Bangalore", 7, "Networking for founders and investors.", 50, 50, "Business"},
	{"Product Management 101", "PM Guild", "Hyderabad", 2, "Basics of product thinking and roadmapping.", 60, 60, "Business"},
	{"Growth Hacking Workshop", "Marketing Hub", "Mumbai", 12, "Hands-on growth tactics for startups.", 70, 70, "Business"},
	{"Investor Pitch Night", "Angel Network", "Bangalore", -5, "Startups pitch to angel investors.", 40, 10, "Business"},

	// Music
	{"Indie Music Night", "Soundwave", "Mumbai", 3, "Live indie bands and open mic.", 200, 200, "Music"},
	{"Classical Evening", "Raga House", "Chennai", 9, "Carnatic classical music concert.", 120, 120, "Music"},
	{"EDM Festival", "PulseBeats", "Goa", 20, "Open-air electronic dance festival.", 500, 500, "Music"},
	{"Jazz & Blues Bar Night", "Blue Note", "Bangalore", -2, "Evening of jazz standards and blues.", 80, 25, "Music"},

	// Sports
	{"City Marathon", "RunClub", "Hyderabad", 14, "Annual 10K and half marathon.", 300, 300, "Sports"},
	{"Cricket Screening", "Fan Park", "Mumbai", 4, "Big screen cricket match screening.", 150, 150, "Sports"},
	{"Yoga in the Park", "FitLife", "Bangalore", 6, "Morning community yoga session.", 60, 60, "Sports"},
	{"Badminton Open", "Smash Arena", "Chennai", -7, "Local badminton tournament.", 90, 40, "Sports"},

	// Health
	{"Wellness Retreat", "CalmMind", "Kerala", 18, "Weekend meditation and wellness retreat.", 40, 40, "Health"},
	{"Nutrition Workshop", "EatRight", "Online", 8, "Practical everyday nutrition guidance.", 100, 100, "Health"},
	{"Mental Health Talk", "MindSpace", "Hyderabad", 11, "Conversation on stress and burnout.", 75, 75, "Health"},
	{"Blood Donation Camp", "Red Cross", "Mumbai", -1, "Community blood donation drive.", 200, 120, "Health"},
}

// SeedEvents wipes the event catalog and inserts the sample events.
// Existing registrations keep their rows; listings simply skip entries
// whose event no longer exists. Runs in a single transaction so the
// catalog is never observed half-seeded.
func SeedEvents(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return 0, err
	}

	const q = `INSERT INTO events (name, organizer, location, date, description, capacity, available_seats, category)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	for _, ev := range sampleEvents {
		date := now.Add(time.Duration(ev.daysFromNow) * 24 * time.Hour)
		if _, err := tx.ExecContext(ctx, q,
			ev.name, ev.organizer, ev.location, date,
			ev.description, ev.capacity, ev.available, ev.category,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return len(sampleEvents), nil
}
