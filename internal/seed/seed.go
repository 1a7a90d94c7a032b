package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/mkalens/sitehub/internal/about"
	"github.com/mkalens/sitehub/internal/blog"
	"github.com/mkalens/sitehub/internal/events"
	"github.com/mkalens/sitehub/internal/services"
	"github.com/mkalens/sitehub/internal/settings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DemoData fills empty content collections with starter documents so a
// fresh deployment has something to show. Collections that already hold
// data are left untouched.
func DemoData(ctx context.Context, db *mongo.Database) error {
	now := time.Now()

	if err := seedCollection(ctx, db.Collection("blogs"), demoPosts(now)); err != nil {
		return fmt.Errorf("seed blogs: %w", err)
	}
	if err := seedCollection(ctx, db.Collection("services"), demoServices()); err != nil {
		return fmt.Errorf("seed services: %w", err)
	}
	if err := seedCollection(ctx, db.Collection("events"), demoEvents(now)); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	if err := seedCollection(ctx, db.Collection("settings"), demoSettings(now)); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if err := seedCollection(ctx, db.Collection("about"), []interface{}{demoAboutPage(now)}); err != nil {
		return fmt.Errorf("seed about: %w", err)
	}

	return nil
}

func seedCollection(ctx context.Context, collection *mongo.Collection, docs []interface{}) error {
	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count > 0 {
		return nil
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert documents: %w", err)
	}

	log.Debugf("collection [%s] seeded with %d demo documents", collection.Name(), len(docs))
	return nil
}

func demoPosts(now time.Time) []interface{} {
	return []interface{}{
		blog.Post{
			Title:     "Welcome to the site",
			Excerpt:   "A quick tour of what lives here and how it is run.",
			Content:   "This site is run by a small team of volunteers. We publish notes on what we build, host a handful of community services, and announce the occasional meetup. Poke around, and if something is broken, tell us.",
			Author:    "admin",
			Category:  "announcements",
			Tags:      []string{"welcome", "meta"},
			CreatedAt: now.Add(-30 * 24 * time.Hour),
			Published: true,
		},
		blog.Post{
			Title:     "Self-hosting 101",
			Excerpt:   "Lessons learned from running our own infrastructure.",
			Content:   "Over the past year we moved everything we run onto our own hardware. Backups, monitoring, and boring deployments turned out to matter far more than clever architecture. Here is what we would do differently.",
			Author:    "admin",
			Category:  "tech",
			Tags:      []string{"infrastructure", "self-hosting"},
			CreatedAt: now.Add(-10 * 24 * time.Hour),
			Published: true,
		},
		blog.Post{
			Title:     "Draft: roadmap ideas",
			Excerpt:   "Things we might build next.",
			Content:   "Collecting ideas for the next quarter. Nothing here is final.",
			Author:    "admin",
			Category:  "meta",
			Tags:      []string{"roadmap"},
			CreatedAt: now.Add(-2 * 24 * time.Hour),
			Published: false,
		},
	}
}

func demoServices() []interface{} {
	return []interface{}{
		services.Service{
			Name:        "Git mirror",
			Description: "Self-hosted git with CI runners for community projects.",
			URL:         "https://git.example.org",
			Icon:        "code",
			Category:    "development",
			Order:       1,
			Active:      true,
		},
		services.Service{
			Name:        "File drop",
			Description: "Temporary file sharing, links expire after a week.",
			URL:         "https://drop.example.org",
			Icon:        "folder",
			Category:    "storage",
			Order:       2,
			Active:      true,
		},
		services.Service{
			Name:        "Status page",
			Description: "Uptime and incident history for everything we host.",
			URL:         "https://status.example.org",
			Icon:        "activity",
			Category:    "monitoring",
			Order:       3,
			Active:      true,
		},
	}
}

func demoEvents(now time.Time) []interface{} {
	return []interface{}{
		events.Event{
			Title:           "Monthly community meetup",
			Description:     "Lightning talks and pizza. Bring a project to show off.",
			Date:            now.Add(14 * 24 * time.Hour),
			Location:        "Room A201",
			Category:        "meetup",
			Organizer:       "admin",
			Status:          events.EventStatusUpcoming,
			MaxParticipants: 50,
			Published:       true,
		},
		events.Event{
			Title:           "Intro to containers workshop",
			Description:     "Hands-on session, laptops required.",
			Date:            now.Add(-30 * 24 * time.Hour),
			Location:        "Lab 3",
			Category:        "workshop",
			Organizer:       "admin",
			Status:          events.EventStatusCompleted,
			MaxParticipants: 20,
			Published:       true,
		},
	}
}

func demoSettings(now time.Time) []interface{} {
	demo := []settings.Setting{
		{Key: "siteName", Value: "SiteHub", Description: "site name"},
		{Key: "siteDescription", Value: "community services and notes", Description: "site description"},
		{Key: "contactEmail", Value: "contact@example.org", Description: "contact email"},
	}

	docs := make([]interface{}, 0, len(demo))
	for _, setting := range demo {
		setting.UpdatedAt = now
		docs = append(docs, setting)
	}
	return docs
}

func demoAboutPage(now time.Time) about.Page {
	return about.Page{
		TeamMembers: []about.TeamMember{
			{
				Name:        "Mika",
				Role:        "maintainer",
				Avatar:      "🛠️",
				Description: "Keeps the servers alive.",
				Skills:      []string{"Go", "Linux", "Postgres"},
			},
			{
				Name:        "Alex",
				Role:        "frontend",
				Avatar:      "🎨",
				Description: "Everything you can click on.",
				Skills:      []string{"Vue", "TypeScript"},
			},
		},
		Timeline: []about.TimelineEntry{
			{Year: "2024", Title: "Founded", Description: "A few friends started hosting services for the community."},
			{Year: "2025", Title: "Growth", Description: "More services, more users, first meetups."},
		},
		Values: []about.Value{
			{Icon: "🔓", Title: "Open by default", Description: "Code and docs are public unless there is a reason not to."},
			{Icon: "🤝", Title: "Community first", Description: "We build what people around us actually need."},
		},
		Stats: []about.Stat{
			{Label: "services", Value: "3", Icon: "🖥️"},
			{Label: "members", Value: "200+", Icon: "👥"},
		},
		Mission: about.Mission{
			Title:   "Our mission",
			Content: "Run useful, reliable services for our community and share what we learn along the way.",
		},
		Contact: map[string]string{
			"email":  "contact@example.org",
			"github": "https://github.com/mkalens",
		},
		UpdatedAt: now,
	}
}
