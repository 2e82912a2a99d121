package domain

// ScoreVector es una derivacion pura: sumas enteras crudas por categoria y
// subcategoria. Aqui no hay redondeo ni escalado; eso es trabajo del
// clasificador cuando necesita porcentajes para display.
type ScoreVector struct {
	Passion       int                 `json:"passion"`
	Mission       int                 `json:"mission"`
	Vocation      int                 `json:"vocation"`
	Profession    int                 `json:"profession"`
	Subcategories map[Subcategory]int `json:"subcategories,omitempty"`
}

// Get devuelve el total crudo de una categoria.
func (v ScoreVector) Get(c Category) int {
	switch c {
	case CategoryPassion:
		return v.Passion
	case CategoryMission:
		return v.Mission
	case CategoryVocation:
		return v.Vocation
	case CategoryProfession:
		return v.Profession
	default:
		return 0
	}
}

// Add suma delta al total de una categoria. Categorias desconocidas se
// ignoran en silencio porque un aporte disperso nunca debe inventar
// dimensiones nuevas.
func (v *ScoreVector) Add(c Category, delta int) {
	switch c {
	case CategoryPassion:
		v.Passion += delta
	case CategoryMission:
		v.Mission += delta
	case CategoryVocation:
		v.Vocation += delta
	case CategoryProfession:
		v.Profession += delta
	}
}

// AddSub suma delta al total de una subcategoria.
func (v *ScoreVector) AddSub(s Subcategory, delta int) {
	if v.Subcategories == nil {
		v.Subcategories = make(map[Subcategory]int)
	}
	v.Subcategories[s] += delta
}

// Total devuelve la suma de las cuatro categorias.
func (v ScoreVector) Total() int {
	return v.Passion + v.Mission + v.Vocation + v.Profession
}
