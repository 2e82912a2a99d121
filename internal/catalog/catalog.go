package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ikigai-engine/internal/domain"
)

var (
	ErrInvalidArchetypeTable = errors.New("invalid archetype table")
	ErrInvalidQuestionBank   = errors.New("invalid question bank")
	ErrInvalidPriceTable     = errors.New("invalid price table")
	ErrInvalidSectionTable   = errors.New("invalid section table")
)

// PriceEntry es una fila de la tabla fija de precios de upgrade. Los precios
// son por par (From, To); roadmap->blueprint y personality->blueprint pueden
// diferir y esa asimetria se preserva tal cual.
type PriceEntry struct {
	From       domain.PremiumTier `yaml:"from"`
	To         domain.PremiumTier `yaml:"to"`
	PriceCents int                `yaml:"price_cents"`
}

// Catalog agrupa todo el dato de referencia estatico del motor: bancos de
// preguntas, tablas de arquetipos, precios y secciones de contenido. Se carga
// una vez al inicio del proceso y se trata como solo-lectura de ahi en mas.
type Catalog struct {
	Questions map[domain.AssessmentKind][]domain.Question     `yaml:"questions"`
	Tables    map[domain.AssessmentKind]domain.ArchetypeTable `yaml:"archetype_tables"`
	Prices    []PriceEntry                                    `yaml:"upgrade_prices"`
	Sections  []domain.ContentSection                         `yaml:"sections"`
}

// Load lee un catalogo desde un archivo YAML y lo valida. Si path es vacio
// devuelve el catalogo por defecto compilado.
func Load(path string) (*Catalog, error) {
	if path == "" {
		cat := Default()
		if err := cat.Validate(); err != nil {
			return nil, err
		}
		return cat, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate falla rapido en tiempo de carga: ninguna tabla malformada debe
// llegar a atender requests.
func (c *Catalog) Validate() error {
	if len(c.Questions) == 0 {
		return fmt.Errorf("%w: no question banks", ErrInvalidQuestionBank)
	}
	for kind, bank := range c.Questions {
		if !kind.Valid() {
			return fmt.Errorf("%w: unknown assessment kind %q", ErrInvalidQuestionBank, kind)
		}
		if err := validateBank(bank); err != nil {
			return fmt.Errorf("bank %q: %w", kind, err)
		}
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("%w: no tables", ErrInvalidArchetypeTable)
	}
	for kind, table := range c.Tables {
		if !kind.Valid() {
			return fmt.Errorf("%w: unknown assessment kind %q", ErrInvalidArchetypeTable, kind)
		}
		if err := ValidateTable(table); err != nil {
			return fmt.Errorf("table %q: %w", kind, err)
		}
		if _, ok := c.Questions[kind]; !ok {
			return fmt.Errorf("%w: table %q has no question bank", ErrInvalidArchetypeTable, kind)
		}
	}

	seenPair := make(map[[2]domain.PremiumTier]struct{}, len(c.Prices))
	for _, p := range c.Prices {
		if !p.From.Valid() || !p.To.Valid() {
			return fmt.Errorf("%w: unknown tier in pair (%s, %s)", ErrInvalidPriceTable, p.From, p.To)
		}
		if !p.From.StrictlyBelow(p.To) {
			return fmt.Errorf("%w: %s does not strictly dominate %s", ErrInvalidPriceTable, p.To, p.From)
		}
		if p.PriceCents <= 0 {
			return fmt.Errorf("%w: non-positive price for (%s, %s)", ErrInvalidPriceTable, p.From, p.To)
		}
		pair := [2]domain.PremiumTier{p.From, p.To}
		if _, dup := seenPair[pair]; dup {
			return fmt.Errorf("%w: duplicate pair (%s, %s)", ErrInvalidPriceTable, p.From, p.To)
		}
		seenPair[pair] = struct{}{}
	}

	seenSection := make(map[string]struct{}, len(c.Sections))
	for _, s := range c.Sections {
		if s.Key == "" {
			return fmt.Errorf("%w: section without key", ErrInvalidSectionTable)
		}
		if _, dup := seenSection[s.Key]; dup {
			return fmt.Errorf("%w: duplicate section %q", ErrInvalidSectionTable, s.Key)
		}
		seenSection[s.Key] = struct{}{}
		if len(s.UnlockedBy) == 0 {
			return fmt.Errorf("%w: section %q unlocked by nothing", ErrInvalidSectionTable, s.Key)
		}
		for _, t := range s.UnlockedBy {
			if !t.Valid() {
				return fmt.Errorf("%w: section %q references unknown tier %q", ErrInvalidSectionTable, s.Key, t)
			}
		}
	}
	return nil
}

func validateBank(bank []domain.Question) error {
	if len(bank) == 0 {
		return fmt.Errorf("%w: empty bank", ErrInvalidQuestionBank)
	}
	seen := make(map[string]struct{}, len(bank))
	for _, q := range bank {
		if q.ID == "" {
			return fmt.Errorf("%w: question without id", ErrInvalidQuestionBank)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question %q", ErrInvalidQuestionBank, q.ID)
		}
		seen[q.ID] = struct{}{}
		if !q.Category.Valid() {
			return fmt.Errorf("%w: question %q has unknown category %q", ErrInvalidQuestionBank, q.ID, q.Category)
		}
		if q.Subcategory != "" {
			owner, ok := domain.SubcategoryOwner[q.Subcategory]
			if !ok {
				return fmt.Errorf("%w: question %q has unknown subcategory %q", ErrInvalidQuestionBank, q.ID, q.Subcategory)
			}
			if owner != q.Category {
				return fmt.Errorf("%w: question %q subcategory %q belongs to %q", ErrInvalidQuestionBank, q.ID, q.Subcategory, owner)
			}
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %q has no options", ErrInvalidQuestionBank, q.ID)
		}
		for i, opt := range q.Options {
			for cat := range opt.Contribution.Categories {
				if !cat.Valid() {
					return fmt.Errorf("%w: question %q option %d contributes to unknown category %q", ErrInvalidQuestionBank, q.ID, i, cat)
				}
			}
			for sub := range opt.Contribution.Subcategories {
				if _, ok := domain.SubcategoryOwner[sub]; !ok {
					return fmt.Errorf("%w: question %q option %d contributes to unknown subcategory %q", ErrInvalidQuestionBank, q.ID, i, sub)
				}
			}
		}
	}
	return nil
}

// ValidateTable verifica una tabla de arquetipos aislada. Se expone aparte
// porque el clasificador tambien la invoca de forma defensiva.
func ValidateTable(table domain.ArchetypeTable) error {
	if len(table.Definitions) < 2 {
		// Con menos de dos arquetipos no puede existir un secundario
		// distinto del primario.
		return fmt.Errorf("%w: needs at least two archetypes", ErrInvalidArchetypeTable)
	}
	keys := make(map[domain.ArchetypeKey]struct{}, len(table.Definitions))
	for _, def := range table.Definitions {
		if def.Key == "" {
			return fmt.Errorf("%w: definition without key", ErrInvalidArchetypeTable)
		}
		if _, dup := keys[def.Key]; dup {
			return fmt.Errorf("%w: duplicate archetype %q", ErrInvalidArchetypeTable, def.Key)
		}
		keys[def.Key] = struct{}{}
		if len(def.Weights) == 0 {
			return fmt.Errorf("%w: archetype %q has no weights", ErrInvalidArchetypeTable, def.Key)
		}
		for cat, w := range def.Weights {
			if !cat.Valid() {
				return fmt.Errorf("%w: archetype %q weighs unknown category %q", ErrInvalidArchetypeTable, def.Key, cat)
			}
			if w <= 0 {
				return fmt.Errorf("%w: archetype %q has non-positive weight for %q", ErrInvalidArchetypeTable, def.Key, cat)
			}
		}
	}
	if len(table.TieBreak) != len(table.Definitions) {
		return fmt.Errorf("%w: tie-break list must rank every archetype exactly once", ErrInvalidArchetypeTable)
	}
	seenTB := make(map[domain.ArchetypeKey]struct{}, len(table.TieBreak))
	for _, key := range table.TieBreak {
		if _, ok := keys[key]; !ok {
			return fmt.Errorf("%w: tie-break references unknown archetype %q", ErrInvalidArchetypeTable, key)
		}
		if _, dup := seenTB[key]; dup {
			return fmt.Errorf("%w: tie-break repeats archetype %q", ErrInvalidArchetypeTable, key)
		}
		seenTB[key] = struct{}{}
	}
	return nil
}

// Bank devuelve el banco de preguntas para un kind.
func (c *Catalog) Bank(kind domain.AssessmentKind) ([]domain.Question, bool) {
	bank, ok := c.Questions[kind]
	return bank, ok
}

// Table devuelve la tabla de arquetipos para un kind.
func (c *Catalog) Table(kind domain.AssessmentKind) (domain.ArchetypeTable, bool) {
	table, ok := c.Tables[kind]
	return table, ok
}

// CategoryMaxima calcula el puntaje maximo alcanzable por categoria para un
// banco: por pregunta, el mayor aporte entre sus opciones. El clasificador lo
// usa para normalizar a escala 0-100.
func (c *Catalog) CategoryMaxima(kind domain.AssessmentKind) map[domain.Category]int {
	maxima := make(map[domain.Category]int, len(domain.Categories))
	for _, cat := range domain.Categories {
		maxima[cat] = 0
	}
	for _, q := range c.Questions[kind] {
		for _, cat := range domain.Categories {
			best := 0
			for _, opt := range q.Options {
				if w := opt.Contribution.Categories[cat]; w > best {
					best = w
				}
			}
			maxima[cat] += best
		}
	}
	return maxima
}

// PriceFor busca el precio listado para el par (from, to). El segundo valor
// indica si el par existe en la tabla.
func (c *Catalog) PriceFor(from, to domain.PremiumTier) (int, bool) {
	for _, p := range c.Prices {
		if p.From == from && p.To == to {
			return p.PriceCents, true
		}
	}
	return 0, false
}

// Section busca una seccion de contenido por clave.
func (c *Catalog) Section(key string) (domain.ContentSection, bool) {
	for _, s := range c.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return domain.ContentSection{}, false
}
