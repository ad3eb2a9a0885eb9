package progression

// Rating describes how productive a day was.
type Rating struct {
	Rating string `json:"rating"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

var ratings = []struct {
	min    float64
	rating Rating
}{
	{80, Rating{"Legendary", "#fbf236", "👑"}},
	{60, Rating{"Epic", "#9b59b6", "⚔️"}},
	{40, Rating{"Great", "#5b6ee1", "🌟"}},
	{25, Rating{"Good", "#6abe30", "✨"}},
	{10, Rating{"Okay", "#9badb7", "👍"}},
}

// DayRating grades a day's earned points.
func DayRating(points float64) Rating {
	for _, r := range ratings {
		if points >= r.min {
			return r.rating
		}
	}
	return Rating{"Rest Day", "#636363", "😴"}
}
