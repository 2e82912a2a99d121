package service

import (
	"errors"
	"fmt"

	"ikigai-engine/internal/domain"
)

// ScoreAggregator pliega respuestas en un ScoreVector. Es puro y sin estado:
// seguro de invocar concurrentemente.
type ScoreAggregator struct{}

// DefaultScoreAggregator permite uso directo sin instanciar.
var DefaultScoreAggregator = ScoreAggregator{}

// ErrInvalidAnswer marca una respuesta que referencia una pregunta
// desconocida o un indice de opcion fuera de rango. Es fatal: nunca se
// recorta ni se descarta en silencio.
var ErrInvalidAnswer = errors.New("invalid answer")

// Aggregate suma los aportes de las opciones elegidas. Propiedades:
//   - independiente del orden: suma pura, sin normalizacion implicita
//   - ultima respuesta gana: una entrada posterior para la misma pregunta
//     reemplaza a la anterior, nunca acumula
//   - preguntas sin responder no aportan nada; sesiones parciales se puntuan
func (ScoreAggregator) Aggregate(questions []domain.Question, answers []domain.Answer) (domain.ScoreVector, error) {
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	// Deduplicacion por pregunta: la entrada mas reciente en la lista pisa
	// a las anteriores.
	effective := make(map[string]domain.Answer, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return domain.ScoreVector{}, fmt.Errorf("%w: unknown question %q", ErrInvalidAnswer, a.QuestionID)
		}
		if a.OptionIndex < 0 || a.OptionIndex >= len(q.Options) {
			return domain.ScoreVector{}, fmt.Errorf("%w: question %q option %d out of range", ErrInvalidAnswer, a.QuestionID, a.OptionIndex)
		}
		effective[a.QuestionID] = a
	}

	var vector domain.ScoreVector
	for id, a := range effective {
		contrib := byID[id].Options[a.OptionIndex].Contribution
		for _, cat := range domain.Categories {
			if delta, ok := contrib.Categories[cat]; ok {
				vector.Add(cat, delta)
			}
		}
		for sub, delta := range contrib.Subcategories {
			vector.AddSub(sub, delta)
		}
	}
	return vector, nil
}
