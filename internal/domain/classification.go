package domain

// ArchetypeKey identifica un arquetipo dentro de una tabla. Es un conjunto
// cerrado declarado por la tabla del catalogo, no un string libre.
type ArchetypeKey string

// Recommendations es contenido estatico asociado al arquetipo ganador.
// El clasificador lo selecciona tal cual; nunca sintetiza prosa.
type Recommendations struct {
	Careers     []string `json:"careers" yaml:"careers"`
	ActionSteps []string `json:"action_steps" yaml:"action_steps"`
}

// ArchetypeDefinition declara en que categoria (o mezcla ponderada de
// categorias) domina el arquetipo, mas su contenido narrativo.
type ArchetypeDefinition struct {
	Key             ArchetypeKey     `json:"key" yaml:"key"`
	Name            string           `json:"name" yaml:"name"`
	Weights         map[Category]int `json:"weights" yaml:"weights"`
	Strengths       []string         `json:"strengths" yaml:"strengths"`
	Recommendations Recommendations  `json:"recommendations" yaml:"recommendations"`
}

// ArchetypeTable es configuracion estatica: definiciones mas una lista de
// prioridad explicita para desempates. El orden de TieBreak es el contrato;
// el orden de insercion de Definitions es un accidente de implementacion.
type ArchetypeTable struct {
	Kind        AssessmentKind        `json:"kind" yaml:"kind"`
	Definitions []ArchetypeDefinition `json:"definitions" yaml:"definitions"`
	TieBreak    []ArchetypeKey        `json:"tie_break" yaml:"tie_break"`
}

// ClassificationResult es la salida derivada del clasificador.
// SecondaryType nunca es igual a PrimaryType.
type ClassificationResult struct {
	PrimaryType      ArchetypeKey     `json:"primary_type"`
	PrimaryName      string           `json:"primary_name"`
	SecondaryType    ArchetypeKey     `json:"secondary_type"`
	SecondaryName    string           `json:"secondary_name"`
	OverallScore     int              `json:"overall_score"`
	CategoryScores   map[Category]int `json:"category_scores"`
	NormalizedScores map[Category]int `json:"normalized_scores"` // escala 0-100
	Strengths        []string         `json:"strengths"`
	Recommendations  Recommendations  `json:"recommendations"`
}
