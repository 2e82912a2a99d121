package domain

import "time"

// Answer registra la opcion elegida para una pregunta dentro de una sesion.
// Una sesion tiene a lo sumo un Answer por Question: volver a responder
// sobreescribe, nunca acumula.
type Answer struct {
	QuestionID  string    `json:"question_id"`
	OptionIndex int       `json:"option_index"`
	AnsweredAt  time.Time `json:"answered_at"`
}
