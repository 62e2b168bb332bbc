package models

// TMDBSearchResponse is the response from the TV search endpoint.
type TMDBSearchResponse struct {
	Results []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"results"`
}

// TMDBImagesResponse is the response from the images endpoint.
type TMDBImagesResponse struct {
	Backdrops []TMDBImage `json:"backdrops"`
	Posters   []TMDBImage `json:"posters"`
}

type TMDBImage struct {
	FilePath string `json:"file_path"`
	Language string `json:"iso_639_1"`
}

// TMDBImages holds the chosen poster and backdrop URLs for one show.
type TMDBImages struct {
	Poster   string
	Backdrop string
}

// IDMappingResponse is the response from the identifier mapping service,
// relating one numeric schedule-source id to its ids elsewhere.
type IDMappingResponse struct {
	AniList int    `json:"anilist"`
	IMDB    string `json:"imdb"`
	TheTVDB int    `json:"thetvdb"`
	MAL     int    `json:"myanimelist"`
}
