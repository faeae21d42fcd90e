// Package model defines shared data structures.
package model

import "time"

// WordEntry is a single vocabulary item.
type WordEntry struct {
	ID             int    `json:"id"`
	Chapter        int    `json:"chapter"`
	Word           string `json:"word"`
	POS            string `json:"pos"`
	Meaning        string `json:"meaning"`
	Example        string `json:"example,omitempty"`
	ExampleMeaning string `json:"exampleMeaning,omitempty"`
}

// Meaning pairs a part-of-speech tag with one meaning.
type Meaning struct {
	POS  string
	Text string
}

// Subtitle is a single caption line of a chapter video.
type Subtitle struct {
	ID    int
	Start int // seconds from video start
	Text  string
}

// VideoChapter holds the captioned video for a chapter.
type VideoChapter struct {
	Chapter    int        `json:"chapter"`
	VideoID    string     `json:"videoId"`
	VideoTitle string     `json:"videoTitle"`
	Subtitles  []Subtitle `json:"subtitles"`
}

// Developer identifies who to contact about the app.
type Developer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Meta describes the content pack.
type Meta struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Description string    `json:"description"`
	Developer   Developer `json:"developer"`
}

// Promo references the promotional video linked from the home view.
type Promo struct {
	VideoID string `json:"videoId"`
}

// Config defines trainer settings after flags and config file are merged.
type Config struct {
	DataDir        string
	IntervalMs     int
	AutoPlay       bool
	Sound          bool
	ReviewMode     string
	ReviewRandom   bool
	SpeechCommand  string
	SpeechVoice    string
	SpeechRate     float64
	SpeechVolume   float64
	PlayerCommand  string
	PlayerSocket   string
	SwipeThreshold int
}

// ReviewPass records a completed review of a chapter.
type ReviewPass struct {
	SessionID string
	Chapter   int
	Mode      string
	Random    bool
	Words     int
	StartedAt time.Time
	EndedAt   time.Time
}

// ChapterHistory aggregates review passes for one chapter.
type ChapterHistory struct {
	Chapter    int
	Passes     int
	LastEnded  time.Time
	DurationMs int64
}
