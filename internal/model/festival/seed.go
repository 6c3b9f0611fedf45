package festival

// Seed returns the full Barefoot Country lineup for Wildwood 2025.
// The API repopulates this on startup so schedule edits ship with the
// binary rather than living in the database.
func Seed() []Artist {
	return []Artist{
		{ID: "1", Name: "Mara Justine", Stage: "Coors Light Main Stage", StartTime: "2025-06-19T15:30:00", EndTime: "2025-06-19T16:30:00", Day: "Thursday"},
		{ID: "2", Name: "Not Leaving Sober", Stage: "Coors Light Main Stage", StartTime: "2025-06-19T16:30:00", EndTime: "2025-06-19T17:30:00", Day: "Thursday"},
		{ID: "3", Name: "Tigirlily Gold", Stage: "Coors Light Main Stage", StartTime: "2025-06-19T17:30:00", EndTime: "2025-06-19T19:00:00", IsStarred: true, Day: "Thursday"},
		{ID: "4", Name: "Colt Ford", Stage: "Coors Light Main Stage", StartTime: "2025-06-19T19:00:00", EndTime: "2025-06-19T20:30:00", Day: "Thursday"},
		{ID: "5", Name: "Megan Moroney", Stage: "Coors Light Main Stage", StartTime: "2025-06-19T20:30:00", EndTime: "2025-06-19T22:00:00", IsStarred: true, Day: "Thursday"},
		{ID: "6", Name: "Rascal Flatts", Stage: "Coors Light Main Stage", StartTime: "2025-06-19T22:00:00", EndTime: "2025-06-19T23:30:00", IsStarred: true, Day: "Thursday"},
		{ID: "7", Name: "12/OC", Stage: "Patrón Tequila Stage", StartTime: "2025-06-19T20:00:00", EndTime: "2025-06-19T21:30:00", Day: "Thursday"},
		{ID: "8", Name: "Kevin Mac", Stage: "Patrón Tequila Stage", StartTime: "2025-06-19T21:30:00", EndTime: "2025-06-19T23:00:00", Day: "Thursday"},
		{ID: "9", Name: "Gillian Smith", Stage: "Coors Light Main Stage", StartTime: "2025-06-20T15:00:00", EndTime: "2025-06-20T16:00:00", Day: "Friday"},
		{ID: "10", Name: "Avery Anna", Stage: "Coors Light Main Stage", StartTime: "2025-06-20T16:00:00", EndTime: "2025-06-20T17:30:00", Day: "Friday"},
		{ID: "11", Name: "George Birge", Stage: "Coors Light Main Stage", StartTime: "2025-06-20T17:30:00", EndTime: "2025-06-20T19:00:00", Day: "Friday"},
		{ID: "12", Name: "Sam Barber", Stage: "Coors Light Main Stage", StartTime: "2025-06-20T19:00:00", EndTime: "2025-06-20T20:30:00", IsStarred: true, Day: "Friday"},
		{ID: "13", Name: "Warren Zeiders", Stage: "Coors Light Main Stage", StartTime: "2025-06-20T20:30:00", EndTime: "2025-06-20T22:00:00", IsStarred: true, Day: "Friday"},
		{ID: "14", Name: "Lainey Wilson", Stage: "Coors Light Main Stage", StartTime: "2025-06-20T22:00:00", EndTime: "2025-06-20T23:30:00", IsStarred: true, Day: "Friday"},
		{ID: "15", Name: "Samantha Spanò", Stage: "Patrón Tequila Stage", StartTime: "2025-06-20T13:30:00", EndTime: "2025-06-20T14:30:00", Day: "Friday"},
		{ID: "16", Name: "Lauren Davidson", Stage: "Patrón Tequila Stage", StartTime: "2025-06-20T14:30:00", EndTime: "2025-06-20T15:30:00", Day: "Friday"},
		{ID: "17", Name: "Kaitlin Butts", Stage: "Patrón Tequila Stage", StartTime: "2025-06-20T15:30:00", EndTime: "2025-06-20T16:30:00", Day: "Friday"},
		{ID: "18", Name: "LANCO", Stage: "Patrón Tequila Stage", StartTime: "2025-06-20T16:30:00", EndTime: "2025-06-20T18:00:00", IsStarred: true, Day: "Friday"},
		{ID: "19", Name: "Meghan Patrick", Stage: "Patrón Tequila Stage", StartTime: "2025-06-20T20:00:00", EndTime: "2025-06-20T21:30:00", Day: "Friday"},
		{ID: "20", Name: "Whey Jennings", Stage: "Patrón Tequila Stage", StartTime: "2025-06-20T21:30:00", EndTime: "2025-06-20T23:00:00", Day: "Friday"},
		{ID: "21", Name: "Willow Avalon", Stage: "Coors Light Main Stage", StartTime: "2025-06-21T16:00:00", EndTime: "2025-06-21T17:30:00", Day: "Saturday"},
		{ID: "22", Name: "Larry Fleet", Stage: "Coors Light Main Stage", StartTime: "2025-06-21T17:30:00", EndTime: "2025-06-21T19:00:00", IsStarred: true, Day: "Saturday"},
		{ID: "23", Name: "Boyz II Men", Stage: "Coors Light Main Stage", StartTime: "2025-06-21T19:00:00", EndTime: "2025-06-21T20:30:00", IsStarred: true, Day: "Saturday"},
		{ID: "24", Name: "Chris Janson", Stage: "Coors Light Main Stage", StartTime: "2025-06-21T20:30:00", EndTime: "2025-06-21T22:00:00", Day: "Saturday"},
		{ID: "25", Name: "Jason Aldean", Stage: "Coors Light Main Stage", StartTime: "2025-06-21T22:00:00", EndTime: "2025-06-21T23:30:00", IsStarred: true, Day: "Saturday"},
		{ID: "26", Name: "Holdyn Barder", Stage: "Patrón Tequila Stage", StartTime: "2025-06-21T13:30:00", EndTime: "2025-06-21T15:30:00", Day: "Saturday"},
		{ID: "27", Name: "Don Louis", Stage: "Patrón Tequila Stage", StartTime: "2025-06-21T15:30:00", EndTime: "2025-06-21T16:30:00", Day: "Saturday"},
		{ID: "28", Name: "Chris Cagle", Stage: "Patrón Tequila Stage", StartTime: "2025-06-21T16:30:00", EndTime: "2025-06-21T18:00:00", Day: "Saturday"},
		{ID: "29", Name: "Austin Williams", Stage: "Patrón Tequila Stage", StartTime: "2025-06-21T20:00:00", EndTime: "2025-06-21T21:30:00", Day: "Saturday"},
		{ID: "30", Name: "Lakeview", Stage: "Patrón Tequila Stage", StartTime: "2025-06-21T21:30:00", EndTime: "2025-06-21T23:00:00", Day: "Saturday"},
		{ID: "31", Name: "Jelly Roll", Stage: "Coors Light Main Stage", StartTime: "2025-06-22T22:00:00", EndTime: "2025-06-22T23:30:00", IsStarred: true, Day: "Sunday"},
		{ID: "32", Name: "Jordan Davis", Stage: "Coors Light Main Stage", StartTime: "2025-06-22T20:30:00", EndTime: "2025-06-22T22:00:00", IsStarred: true, Day: "Sunday"},
		{ID: "33", Name: "Ella Langley", Stage: "Coors Light Main Stage", StartTime: "2025-06-22T19:00:00", EndTime: "2025-06-22T20:30:00", Day: "Sunday"},
		{ID: "34", Name: "Bayker Blankenship", Stage: "Coors Light Main Stage", StartTime: "2025-06-22T17:30:00", EndTime: "2025-06-22T19:00:00", Day: "Sunday"},
		{ID: "35", Name: "Davisson Brothers Band", Stage: "Coors Light Main Stage", StartTime: "2025-06-22T16:00:00", EndTime: "2025-06-22T17:30:00", Day: "Sunday"},
		{ID: "36", Name: "Chayce Beckham", Stage: "Patrón Tequila Stage", StartTime: "2025-06-22T21:30:00", EndTime: "2025-06-22T23:00:00", IsStarred: true, Day: "Sunday"},
		{ID: "37", Name: "Lanie Gardner", Stage: "Patrón Tequila Stage", StartTime: "2025-06-22T20:00:00", EndTime: "2025-06-22T21:30:00", Day: "Sunday"},
		{ID: "38", Name: "Cat Country B.O.T.B Winner", Stage: "Patrón Tequila Stage", StartTime: "2025-06-22T18:00:00", EndTime: "2025-06-22T19:00:00", Day: "Sunday"},
		{ID: "39", Name: "Thomas Edwards", Stage: "Patrón Tequila Stage", StartTime: "2025-06-22T16:30:00", EndTime: "2025-06-22T17:30:00", Day: "Sunday"},
		{ID: "40", Name: "The Jack Wharff Band", Stage: "Patrón Tequila Stage", StartTime: "2025-06-22T15:00:00", EndTime: "2025-06-22T16:30:00", Day: "Sunday"},
	}
}
