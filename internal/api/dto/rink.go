package dto

type ClosestRinkResponse struct {
	Name       string         `json:"name"`
	DistanceKm float64        `json:"distance_km"`
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	Message    string         `json:"message"`
	Record     map[string]any `json:"record"`
}

type RinkResponse struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type ListRinksResponse struct {
	Rinks []RinkResponse `json:"rinks"`
}
