// Package apiv1 holds the request and response messages of the trainer API.
// The same messages are served as REST JSON and over Connect with a JSON codec.
package apiv1

const (
	// TrainerServiceName is the fully-qualified name of the Connect service.
	TrainerServiceName = "kotoba.v1.TrainerService"

	TrainerServiceGetRandomEntryProcedure = "/kotoba.v1.TrainerService/GetRandomEntry"
	TrainerServiceCheckAnswerProcedure    = "/kotoba.v1.TrainerService/CheckAnswer"
	TrainerServiceHeartbeatProcedure      = "/kotoba.v1.TrainerService/Heartbeat"
)

type Segment struct {
	Text        string `json:"text"`
	Reading     string `json:"reading"`
	Romaji      string `json:"romaji"`
	HasKanji    bool   `json:"hasKanji"`
	HasKatakana bool   `json:"hasKatakana"`
}

type Word struct {
	Headword     string    `json:"headword"`
	Reading      string    `json:"reading"`
	Romaji       string    `json:"romaji"`
	Meaning      string    `json:"meaning"`
	Segments     []Segment `json:"segments"`
	FuriganaHTML string    `json:"furiganaHtml,omitempty"`
}

type Dictionary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

type ListDictionariesResponse struct {
	Dictionaries []Dictionary `json:"dictionaries"`
	Default      string       `json:"default"`
}

type GetRandomEntryRequest struct {
	Dict                string `json:"dict" validate:"max=255"`
	Session             string `json:"session" validate:"max=64"`
	ShowKatakanaReading bool   `json:"showKatakanaReading"`
}

type GetRandomEntryResponse struct {
	Word        Word       `json:"word"`
	Dictionary  Dictionary `json:"dictionary"`
	TotalWords  int        `json:"totalWords"`
	ActiveUsers int        `json:"activeUsers"`
}

type CheckAnswerRequest struct {
	Dict    string `json:"dict" validate:"max=255"`
	Word    string `json:"word" validate:"required,max=255"`
	Answer  string `json:"answer" validate:"max=255"`
	Session string `json:"session" validate:"max=64"`
}

type CheckAnswerResponse struct {
	Correct     bool   `json:"correct"`
	MatchedForm string `json:"matchedForm"`
	UserRomaji  string `json:"userRomaji"`
	Word        Word   `json:"word"`
	ActiveUsers int    `json:"activeUsers"`
}

type HeartbeatRequest struct {
	Session string `json:"session" validate:"max=64"`
}

type HeartbeatResponse struct {
	ActiveUsers int `json:"activeUsers"`
}

type CreateSessionResponse struct {
	Session     string `json:"session"`
	ActiveUsers int    `json:"activeUsers"`
}

type ScoreResponse struct {
	Session string `json:"session"`
	Correct int    `json:"correct"`
	Wrong   int    `json:"wrong"`
}

// ErrorResponse is the body of a failed REST call.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}
