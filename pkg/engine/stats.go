package engine

// Stats are the lifetime counters, persisted under the "stats" key.
type Stats struct {
	TotalRounds  int `msgpack:"totalRounds"`
	TotalGuesses int `msgpack:"totalGuesses"`
}

// AverageGuesses is guesses per round, 0 before the first round.
func (s Stats) AverageGuesses() float64 {
	if s.TotalRounds == 0 {
		return 0
	}
	return float64(s.TotalGuesses) / float64(s.TotalRounds)
}

// Summary is what the stats surface shows.
type Summary struct {
	Stats
	Average      float64
	WordsLearned int
}
