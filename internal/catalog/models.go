package catalog

import (
	"strconv"
	"strings"

	"github.com/quizmaster-app/quizmaster/internal/domain"
)

type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Chapter struct {
	ID          string `json:"id"`
	SubjectID   string `json:"subject_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Quiz struct {
	ID        string `json:"id"`
	ChapterID string `json:"chapter_id"`
	Title     string `json:"title"`
	QuizDate  string `json:"quiz_date,omitempty"` // YYYY-MM-DD
	Duration  string `json:"duration"`            // HH:MM
	Remarks   string `json:"remarks,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

type Question struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quiz_id"`
	Text        string    `json:"text"`
	Options     [4]string `json:"options"`
	CorrectSlot int       `json:"correct_slot"` // 1..4
	Position    int       `json:"position,omitempty"`
}

// DurationSeconds converts a stored "HH:MM" duration into a total number of
// seconds. A trailing ":SS" component is tolerated and ignored. Absent or
// malformed values fail with domain.ErrInvalidDuration.
func DurationSeconds(d string) (int, error) {
	parts := strings.Split(d, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, domain.ErrInvalidDuration
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, domain.ErrInvalidDuration
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, domain.ErrInvalidDuration
	}
	return hours*3600 + minutes*60, nil
}
