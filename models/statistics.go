package models

// Scorer — строка таблицы бомбардиров чемпионата.
type Scorer struct {
	Player Player `json:"player"`
	Goals  int    `json:"goals"`
}

// PlayerCardStats — строка таблицы карточек. Красная карточка
// весит как две жёлтые при сортировке.
type PlayerCardStats struct {
	Player      Player `json:"player"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
	TotalCards  int    `json:"total_cards"`
}
