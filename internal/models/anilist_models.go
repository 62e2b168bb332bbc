package models

// AniListResponse is the GraphQL response envelope for the airing
// schedule query.
type AniListResponse struct {
	Data struct {
		Page struct {
			AiringSchedules []AiringSchedule `json:"airingSchedules"`
		} `json:"Page"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// AiringSchedule is one airing instance with its nested media record.
type AiringSchedule struct {
	ID       int          `json:"id"`
	AiringAt int64        `json:"airingAt"`
	Episode  int          `json:"episode"`
	Media    AniListMedia `json:"media"`
}

type AniListMedia struct {
	ID    int `json:"id"`
	Title struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	} `json:"title"`
	CoverImage struct {
		ExtraLarge string `json:"extraLarge"`
		Large      string `json:"large"`
	} `json:"coverImage"`
	BannerImage  string   `json:"bannerImage"`
	Description  string   `json:"description"`
	Genres       []string `json:"genres"`
	AverageScore int      `json:"averageScore"`
	Season       string   `json:"season"`
	SeasonYear   int      `json:"seasonYear"`
}
