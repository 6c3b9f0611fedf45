package festival

// Artist is one lineup slot. Times stay as the naive local strings the
// frontend schedule grid renders directly.
type Artist struct {
	ID        string `gorm:"primaryKey;size:16" json:"id"`
	Name      string `json:"name"`
	Stage     string `json:"stage"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsStarred bool   `json:"isStarred"`
	Day       string `json:"day"`
}
