package service

import (
	"fmt"
	"sort"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
)

// Classifier convierte un ScoreVector en un ClassificationResult usando una
// tabla de arquetipos. Es generico sobre la forma de la tabla: dominancia de
// una sola categoria o mezcla ponderada, da igual; solo evalua pesos.
type Classifier struct{}

// DefaultClassifier permite uso directo sin instanciar.
var DefaultClassifier = Classifier{}

// archetypeRank es el puntaje de un arquetipo contra el vector. Dos
// arquetipos con distinta cantidad de pesos se comparan por su media
// ponderada exacta (score/weightSum) via producto cruzado, sin flotantes.
type archetypeRank struct {
	def       domain.ArchetypeDefinition
	score     int
	weightSum int
	priority  int
}

func (a archetypeRank) beats(b archetypeRank) bool {
	left := a.score * b.weightSum
	right := b.score * a.weightSum
	if left != right {
		return left > right
	}
	// Empate exacto: decide la lista de prioridad configurada, nunca el
	// orden de insercion de la tabla.
	return a.priority < b.priority
}

// Classify ordena los arquetipos de la tabla contra el vector y arma el
// resultado. Un vector todo-en-cero no es error: el empate total se resuelve
// por la prioridad configurada, porque las sesiones parciales tambien
// muestran un "mejor candidato hasta ahora".
//
// maxima trae el puntaje maximo alcanzable por categoria (lo provee el
// catalogo) y solo se usa para la escala 0-100 de display.
func (Classifier) Classify(vector domain.ScoreVector, table domain.ArchetypeTable, maxima map[domain.Category]int) (domain.ClassificationResult, error) {
	if err := catalog.ValidateTable(table); err != nil {
		return domain.ClassificationResult{}, err
	}

	priority := make(map[domain.ArchetypeKey]int, len(table.TieBreak))
	for i, key := range table.TieBreak {
		priority[key] = i
	}

	ranks := make([]archetypeRank, 0, len(table.Definitions))
	for _, def := range table.Definitions {
		score := 0
		weightSum := 0
		for _, cat := range domain.Categories {
			w, ok := def.Weights[cat]
			if !ok {
				continue
			}
			score += w * vector.Get(cat)
			weightSum += w
		}
		ranks = append(ranks, archetypeRank{
			def:       def,
			score:     score,
			weightSum: weightSum,
			priority:  priority[def.Key],
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].beats(ranks[j]) })

	primary := ranks[0].def
	secondary := ranks[1].def
	if secondary.Key == primary.Key {
		// No deberia ocurrir con una tabla validada; fallar fuerte antes
		// que violar el invariante secundario != primario.
		return domain.ClassificationResult{}, fmt.Errorf("%w: duplicate winner %q", catalog.ErrInvalidArchetypeTable, primary.Key)
	}

	categoryScores := make(map[domain.Category]int, len(domain.Categories))
	normalized := make(map[domain.Category]int, len(domain.Categories))
	for _, cat := range domain.Categories {
		raw := vector.Get(cat)
		categoryScores[cat] = raw
		normalized[cat] = normalizeScore(raw, maxima[cat])
	}

	return domain.ClassificationResult{
		PrimaryType:      primary.Key,
		PrimaryName:      primary.Name,
		SecondaryType:    secondary.Key,
		SecondaryName:    secondary.Name,
		OverallScore:     vector.Total(),
		CategoryScores:   categoryScores,
		NormalizedScores: normalized,
		Strengths:        primary.Strengths,
		Recommendations:  primary.Recommendations,
	}, nil
}

// normalizeScore escala un total crudo a 0-100 con redondeo al entero mas
// cercano. Sin maximo conocido devuelve 0.
func normalizeScore(raw, max int) int {
	if max <= 0 {
		return 0
	}
	n := (raw*100 + max/2) / max
	if n > 100 {
		n = 100
	}
	return n
}
