package domain

// Category es una de las cuatro dimensiones canonicas del modelo Ikigai.
type Category string

const (
	CategoryPassion    Category = "passion"    // Lo que amas
	CategoryMission    Category = "mission"    // Lo que el mundo necesita
	CategoryVocation   Category = "vocation"   // En lo que eres bueno
	CategoryProfession Category = "profession" // Por lo que te pueden pagar
)

// Categories define el orden canonico de las dimensiones. Este orden es
// tambien la prioridad por defecto para desempates y nunca debe derivarse
// de la iteracion de un map.
var Categories = []Category{
	CategoryPassion,
	CategoryMission,
	CategoryVocation,
	CategoryProfession,
}

// Valid indica si la categoria pertenece al conjunto cerrado.
func (c Category) Valid() bool {
	switch c {
	case CategoryPassion, CategoryMission, CategoryVocation, CategoryProfession:
		return true
	default:
		return false
	}
}

// Subcategory es una etiqueta de rasgo mas fina. Cada subcategoria pertenece
// a exactamente una categoria para efectos de puntaje.
type Subcategory string

const (
	SubCreativeArts   Subcategory = "creative_arts"
	SubExploration    Subcategory = "exploration"
	SubSelfExpression Subcategory = "self_expression"
	SubSocialCauses   Subcategory = "social_causes"
	SubCommunity      Subcategory = "community"
	SubMentorship     Subcategory = "mentorship"
	SubLeadership     Subcategory = "leadership"
	SubProblemSolving Subcategory = "problem_solving"
	SubCraftsmanship  Subcategory = "craftsmanship"
	SubStrategy       Subcategory = "strategy"
	SubEnterprise     Subcategory = "enterprise"
)

// Subcategories define el orden canonico de las once subcategorias. Se usa
// para construir representaciones posicionales estables (ej. el embedding
// del resultado).
var Subcategories = []Subcategory{
	SubCreativeArts,
	SubExploration,
	SubSelfExpression,
	SubSocialCauses,
	SubCommunity,
	SubMentorship,
	SubLeadership,
	SubProblemSolving,
	SubCraftsmanship,
	SubStrategy,
	SubEnterprise,
}

// SubcategoryOwner mapea cada subcategoria a su categoria duena.
var SubcategoryOwner = map[Subcategory]Category{
	SubCreativeArts:   CategoryPassion,
	SubExploration:    CategoryPassion,
	SubSelfExpression: CategoryPassion,
	SubSocialCauses:   CategoryMission,
	SubCommunity:      CategoryMission,
	SubMentorship:     CategoryMission,
	SubLeadership:     CategoryVocation,
	SubProblemSolving: CategoryVocation,
	SubCraftsmanship:  CategoryVocation,
	SubStrategy:       CategoryProfession,
	SubEnterprise:     CategoryProfession,
}

// ScoreContribution indica cuanto aporta una opcion elegida a cada dimension.
// Los mapas son dispersos: lo ausente vale cero. Una opcion puede aportar a
// mas de una dimension a la vez.
type ScoreContribution struct {
	Categories    map[Category]int    `json:"categories,omitempty" yaml:"categories,omitempty"`
	Subcategories map[Subcategory]int `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
}

// AnswerOption es una opcion de respuesta inmutable con su texto visible y
// su aporte de puntaje.
type AnswerOption struct {
	Text         string            `json:"text" yaml:"text"`
	Contribution ScoreContribution `json:"contribution" yaml:"contribution"`
}

// Question es dato de referencia inmutable, cargado una vez al inicio del
// proceso y nunca mutado.
type Question struct {
	ID          string         `json:"id" yaml:"id"`
	Text        string         `json:"text" yaml:"text"`
	Position    int            `json:"position" yaml:"position"`
	Category    Category       `json:"category" yaml:"category"`
	Subcategory Subcategory    `json:"subcategory" yaml:"subcategory"`
	Options     []AnswerOption `json:"options" yaml:"options"`
}
