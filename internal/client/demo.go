package client

import (
	"time"

	"github.com/stillpoint/wellness-server-go/internal/model"
)

// SampleSessions returns the bundled published sessions served in demo mode
// when the backend is unreachable. Callers get a fresh copy each time.
func SampleSessions() []model.Session {
	now := time.Now()
	return []model.Session{
		{
			ID:          "demo-1",
			OwnerID:     "demo",
			OwnerEmail:  "wellness@team.com",
			Title:       "Morning Mindfulness Meditation",
			Tags:        model.TagList{"meditation", "morning", "mindfulness"},
			VideoURL:    "https://www.youtube.com/embed/ZToicYcHIOU",
			Thumbnail:   "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=225&fit=crop",
			Description: "Start your day with peace and clarity through this guided morning meditation.",
			Duration:    "10 min",
			Status:      model.SessionStatusPublished,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "demo-2",
			OwnerID:     "demo",
			OwnerEmail:  "wellness@team.com",
			Title:       "Gentle Yoga Flow for Beginners",
			Tags:        model.TagList{"yoga", "beginner", "gentle"},
			VideoURL:    "https://www.youtube.com/embed/v7AYKMP6rOE",
			Thumbnail:   "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=225&fit=crop",
			Description: "A soothing yoga flow perfect for beginners to build flexibility and strength.",
			Duration:    "20 min",
			Status:      model.SessionStatusPublished,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "demo-3",
			OwnerID:     "demo",
			OwnerEmail:  "wellness@team.com",
			Title:       "Deep Breathing for Stress Relief",
			Tags:        model.TagList{"breathing", "stress-relief", "relaxation"},
			VideoURL:    "https://www.youtube.com/embed/tybOi4hjZFQ",
			Thumbnail:   "https://images.unsplash.com/photo-1515375033182-a1d4b5b8c8f7?w=400&h=225&fit=crop",
			Description: "Learn powerful breathing techniques to reduce stress and anxiety.",
			Duration:    "8 min",
			Status:      model.SessionStatusPublished,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
