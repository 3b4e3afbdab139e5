package api

import "time"

// District представляет избирательный округ (район)
type District struct {
	ID             string `json:"id"`             // идентификатор района
	Name           string `json:"name"`           // название района
	Province       string `json:"province"`       // провинция
	Constituencies int    `json:"constituencies"` // количество избирательных участков в районе
}

// Party представляет политическую партию
type Party struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`         // UUID партии
	Name      string    `json:"name"`       // полное название
	ShortName string    `json:"short_name"` // аббревиатура
	Color     string    `json:"color"`      // цвет на карте (#RRGGBB)
}

// PartyRequest тело запроса на создание или изменение партии
type PartyRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Color     string `json:"color"`
}

// CandidateStatus статус кандидата в подсчете голосов
type CandidateStatus string

const (
	CandidateStatusContesting CandidateStatus = "contesting"
	CandidateStatusLeading    CandidateStatus = "leading"
	CandidateStatusElected    CandidateStatus = "elected"
	CandidateStatusLost       CandidateStatus = "lost"
)

// Candidate представляет кандидата в избирательном участке
type Candidate struct {
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	ID           string          `json:"id"`            // UUID кандидата
	Name         string          `json:"name"`          // имя кандидата
	PartyID      string          `json:"party_id"`      // партия (может быть пустой для независимых)
	DistrictID   string          `json:"district_id"`   // район
	Status       CandidateStatus `json:"status"`        // статус подсчета
	Constituency int             `json:"constituency"`  // номер участка внутри района
	Votes        int64           `json:"votes"`         // текущее число голосов
	Age          int             `json:"age,omitempty"` // возраст
}

// CandidateRequest тело запроса на создание или изменение кандидата
type CandidateRequest struct {
	ID           string          `json:"id,omitempty"` // клиент может предложить собственный UUID
	Name         string          `json:"name"`
	PartyID      string          `json:"party_id"`
	DistrictID   string          `json:"district_id"`
	Status       CandidateStatus `json:"status,omitempty"`
	Constituency int             `json:"constituency"`
	Votes        int64           `json:"votes"`
	Age          int             `json:"age,omitempty"`
}

// LiveResult лидер подсчета в одном избирательном участке
type LiveResult struct {
	DistrictID   string `json:"district_id"`
	LeaderID     string `json:"leader_id"`
	LeaderName   string `json:"leader_name"`
	PartyID      string `json:"party_id"`
	Constituency int    `json:"constituency"`
	LeaderVotes  int64  `json:"leader_votes"`
	TotalVotes   int64  `json:"total_votes"`
	Candidates   int    `json:"candidates"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
