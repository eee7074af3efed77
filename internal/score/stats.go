package score

// Stats aggregates a quiz's scores into min/max/mean. Empty input yields
// zeros rather than an error, so dashboards can render quizzes nobody has
// taken yet.
func Stats(quizID string, scores []Score) QuizStats {
	st := QuizStats{QuizID: quizID, Attempts: len(scores)}
	if len(scores) == 0 {
		return st
	}
	st.Lowest = scores[0].Score
	st.Highest = scores[0].Score
	sum := 0
	for _, sc := range scores {
		if sc.Score < st.Lowest {
			st.Lowest = sc.Score
		}
		if sc.Score > st.Highest {
			st.Highest = sc.Score
		}
		sum += sc.Score
	}
	st.Average = float64(sum) / float64(len(scores))
	return st
}
