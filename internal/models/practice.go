package models

// PracticeResult is one completed practice session. Appended to the
// profile history and never mutated.
type PracticeResult struct {
	Date           string `json:"date"`
	Word           string `json:"word"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

// NormalizedScore is the result on a 0–10 scale. A result without questions scores 0.
func (r PracticeResult) NormalizedScore() float64 {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 10
}

// UserProfile aggregates the learner's practice history.
// TotalPractices always equals len(PracticeHistory).
type UserProfile struct {
	TotalPractices  int              `json:"totalPractices"`
	AverageScore    float64          `json:"averageScore"`
	PracticeHistory []PracticeResult `json:"practiceHistory"`
}

// NewUserProfile returns the zero-valued profile with an empty, non-nil history.
func NewUserProfile() UserProfile {
	return UserProfile{PracticeHistory: []PracticeResult{}}
}

// Recompute derives TotalPractices and AverageScore from the full history.
func (p *UserProfile) Recompute() {
	if p.PracticeHistory == nil {
		p.PracticeHistory = []PracticeResult{}
	}
	p.TotalPractices = len(p.PracticeHistory)
	if p.TotalPractices == 0 {
		p.AverageScore = 0
		return
	}
	var sum float64
	for _, r := range p.PracticeHistory {
		sum += r.NormalizedScore()
	}
	p.AverageScore = sum / float64(p.TotalPractices)
}
