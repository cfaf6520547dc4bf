package dto

type UniqueVisitorsResponse struct {
	Unique int64 `json:"unique"`
}

type ActiveVisitorsResponse struct {
	Active int `json:"active"`
}
