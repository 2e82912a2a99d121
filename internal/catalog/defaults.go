package catalog

import "ikigai-engine/internal/domain"

// Claves de arquetipos del catalogo por defecto.
const (
	ArchCreativeEnthusiast  domain.ArchetypeKey = "creative_enthusiast"
	ArchCompassionateHelper domain.ArchetypeKey = "compassionate_helper"
	ArchSkilledBuilder      domain.ArchetypeKey = "skilled_builder"
	ArchStrategicAchiever   domain.ArchetypeKey = "strategic_achiever"
	ArchBalancedExplorer    domain.ArchetypeKey = "balanced_explorer"

	ArchVisionaryDreamer     domain.ArchetypeKey = "visionary_dreamer"
	ArchSocialArchitect      domain.ArchetypeKey = "social_architect"
	ArchMasterCraftsman      domain.ArchetypeKey = "master_craftsman"
	ArchCreativeEntrepreneur domain.ArchetypeKey = "creative_entrepreneur"
)

// DefaultTieBreak documenta la politica de desempate elegida: orden fijo
// passion > mission > vocation > profession. Las listas TieBreak de las
// tablas por defecto estan ordenadas segun esta prioridad; el clasificador
// jamas depende del orden de iteracion de un map.
var DefaultTieBreak = []domain.Category{
	domain.CategoryPassion,
	domain.CategoryMission,
	domain.CategoryVocation,
	domain.CategoryProfession,
}

func one(c domain.Category) map[domain.Category]int {
	return map[domain.Category]int{c: 1}
}

func pair(a, b domain.Category) map[domain.Category]int {
	return map[domain.Category]int{a: 1, b: 1}
}

// opt construye una opcion que aporta 1 punto a una sola dimension, el caso
// normal del banco. La subcategoria puede ser vacia.
func opt(text string, c domain.Category, s domain.Subcategory) domain.AnswerOption {
	contrib := domain.ScoreContribution{Categories: one(c)}
	if s != "" {
		contrib.Subcategories = map[domain.Subcategory]int{s: 1}
	}
	return domain.AnswerOption{Text: text, Contribution: contrib}
}

// neutral construye una opcion sin aporte alguno.
func neutral(text string) domain.AnswerOption {
	return domain.AnswerOption{Text: text, Contribution: domain.ScoreContribution{}}
}

// Default devuelve el catalogo compilado: bancos quick y full, sus tablas de
// arquetipos, la tabla de precios y las secciones de contenido.
func Default() *Catalog {
	return &Catalog{
		Questions: map[domain.AssessmentKind][]domain.Question{
			domain.KindQuick: defaultQuickBank(),
			domain.KindFull:  defaultFullBank(),
		},
		Tables: map[domain.AssessmentKind]domain.ArchetypeTable{
			domain.KindQuick: defaultQuickTable(),
			domain.KindFull:  defaultFullTable(),
		},
		Prices: []PriceEntry{
			{From: domain.TierNone, To: domain.TierRoadmap, PriceCents: 1900},
			{From: domain.TierNone, To: domain.TierPersonality, PriceCents: 2400},
			{From: domain.TierNone, To: domain.TierBlueprint, PriceCents: 4900},
			{From: domain.TierRoadmap, To: domain.TierBlueprint, PriceCents: 3400},
			{From: domain.TierPersonality, To: domain.TierBlueprint, PriceCents: 2900},
		},
		Sections: []domain.ContentSection{
			{Key: "overview", Title: "Your Ikigai Overview", UnlockedBy: []domain.PremiumTier{domain.TierNone}},
			{Key: "strengths_summary", Title: "Strengths Summary", UnlockedBy: []domain.PremiumTier{domain.TierNone}},
			{Key: "career_roadmap", Title: "Career Roadmap", UnlockedBy: []domain.PremiumTier{domain.TierRoadmap}},
			{Key: "personality_deep_dive", Title: "Personality Deep Dive", UnlockedBy: []domain.PremiumTier{domain.TierPersonality}},
			{Key: "action_plan", Title: "90-Day Action Plan", UnlockedBy: []domain.PremiumTier{domain.TierBlueprint}},
			{Key: "similar_profiles", Title: "Profiles Like Yours", UnlockedBy: []domain.PremiumTier{domain.TierBlueprint}},
		},
	}
}

func defaultQuickTable() domain.ArchetypeTable {
	return domain.ArchetypeTable{
		Kind: domain.KindQuick,
		Definitions: []domain.ArchetypeDefinition{
			{
				Key:     ArchCreativeEnthusiast,
				Name:    "Creative Enthusiast",
				Weights: one(domain.CategoryPassion),
				Strengths: []string{
					"Original thinking and a strong creative drive",
					"Natural curiosity for new ideas and mediums",
					"High intrinsic motivation when work feels personal",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Designer", "Writer", "Art director", "Content creator"},
					ActionSteps: []string{"Block weekly time for a personal creative project", "Share one piece of work publicly each month"},
				},
			},
			{
				Key:     ArchCompassionateHelper,
				Name:    "Compassionate Helper",
				Weights: one(domain.CategoryMission),
				Strengths: []string{
					"Deep empathy and awareness of others' needs",
					"Drive to contribute to causes larger than yourself",
					"Talent for building trust quickly",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Social worker", "Nonprofit coordinator", "Teacher", "Community manager"},
					ActionSteps: []string{"Volunteer with one cause that moves you", "Map the social problems you keep coming back to"},
				},
			},
			{
				Key:     ArchSkilledBuilder,
				Name:    "Skilled Builder",
				Weights: one(domain.CategoryVocation),
				Strengths: []string{
					"Craftsmanship and pride in well-made work",
					"Fast, practical learning of new skills",
					"Reliability under concrete, hands-on problems",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Engineer", "Craftsperson", "Technical lead", "Analyst"},
					ActionSteps: []string{"Pick one skill to take from good to excellent this quarter", "Teach what you know to someone junior"},
				},
			},
			{
				Key:     ArchStrategicAchiever,
				Name:    "Strategic Achiever",
				Weights: one(domain.CategoryProfession),
				Strengths: []string{
					"Clear eye for market value and opportunity",
					"Discipline to turn plans into income",
					"Comfort negotiating and positioning yourself",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Product manager", "Consultant", "Founder", "Sales lead"},
					ActionSteps: []string{"Audit which of your skills the market pays most for", "Set one revenue or career milestone for the next 90 days"},
				},
			},
			{
				Key:  ArchBalancedExplorer,
				Name: "Balanced Explorer",
				Weights: map[domain.Category]int{
					domain.CategoryPassion:    1,
					domain.CategoryMission:    1,
					domain.CategoryVocation:   1,
					domain.CategoryProfession: 1,
				},
				Strengths: []string{
					"Versatility across creative, social and practical work",
					"Openness to reinvention and new paths",
					"Ability to connect people and disciplines",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Generalist operator", "Program manager", "Entrepreneur"},
					ActionSteps: []string{"Run small experiments in two different fields this month", "Keep a journal of which work gives you energy"},
				},
			},
		},
		// Prioridad de desempate alineada a passion > mission > vocation >
		// profession; el explorador balanceado va ultimo.
		TieBreak: []domain.ArchetypeKey{
			ArchCreativeEnthusiast,
			ArchCompassionateHelper,
			ArchSkilledBuilder,
			ArchStrategicAchiever,
			ArchBalancedExplorer,
		},
	}
}

func defaultFullTable() domain.ArchetypeTable {
	return domain.ArchetypeTable{
		Kind: domain.KindFull,
		Definitions: []domain.ArchetypeDefinition{
			{
				Key:     ArchVisionaryDreamer,
				Name:    "Visionary Dreamer",
				Weights: pair(domain.CategoryPassion, domain.CategoryMission),
				Strengths: []string{
					"Imagination in service of causes that matter",
					"Ability to inspire others with a picture of what could be",
					"Persistence on projects with personal meaning",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Social entrepreneur", "Campaign creative", "Documentary maker"},
					ActionSteps: []string{"Write the one-page vision of the change you want to make", "Find a collaborator who is strong on execution"},
				},
			},
			{
				Key:     ArchCreativeEntrepreneur,
				Name:    "Creative Entrepreneur",
				Weights: pair(domain.CategoryPassion, domain.CategoryProfession),
				Strengths: []string{
					"Turning creative work into viable products",
					"Comfort owning both the craft and the business side",
					"Instinct for what an audience will pay for",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Studio founder", "Freelance creative", "Brand strategist"},
					ActionSteps: []string{"Price and sell one small creative offering", "Study one creator whose business model you admire"},
				},
			},
			{
				Key:     ArchSocialArchitect,
				Name:    "Social Architect",
				Weights: pair(domain.CategoryMission, domain.CategoryVocation),
				Strengths: []string{
					"Building systems and teams that serve people",
					"Pairing empathy with concrete organizational skill",
					"Patience for slow, structural change",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Program director", "Public sector lead", "Operations manager in NGOs"},
					ActionSteps: []string{"Take ownership of one process that frustrates your community", "Learn the basics of facilitation"},
				},
			},
			{
				Key:     ArchMasterCraftsman,
				Name:    "Master Craftsman",
				Weights: pair(domain.CategoryVocation, domain.CategoryProfession),
				Strengths: []string{
					"Deep technical excellence the market rewards",
					"Standards that pull whole teams upward",
					"Calm authority grounded in demonstrated skill",
				},
				Recommendations: domain.Recommendations{
					Careers:     []string{"Principal engineer", "Specialist consultant", "Master tradesperson"},
					ActionSteps: []string{"Define what mastery means in your field and gap-check yourself", "Raise your rates to match your level"},
				},
			},
		},
		TieBreak: []domain.ArchetypeKey{
			ArchVisionaryDreamer,
			ArchCreativeEntrepreneur,
			ArchSocialArchitect,
			ArchMasterCraftsman,
		},
	}
}

func defaultQuickBank() []domain.Question {
	return []domain.Question{
		{
			ID: "q-quick-01", Text: "How do you relate to creative work?", Position: 1, Category: domain.CategoryPassion,
			Options: []domain.AnswerOption{
				opt("I lose track of time when I am making something new", domain.CategoryPassion, ""),
				opt("I enjoy it, but mostly as a hobby", domain.CategoryPassion, ""),
				neutral("Creative work does not particularly pull me"),
			},
		},
		{
			ID: "q-quick-02", Text: "Do you pursue projects of your own?", Position: 2, Category: domain.CategoryPassion,
			Options: []domain.AnswerOption{
				opt("I have a personal project I think about constantly", domain.CategoryPassion, ""),
				neutral("I rarely start projects of my own"),
			},
		},
		{
			ID: "q-quick-03", Text: "How do world problems affect you?", Position: 3, Category: domain.CategoryMission,
			Options: []domain.AnswerOption{
				opt("Injustice I read about stays with me for days", domain.CategoryMission, ""),
				neutral("I notice it but move on quickly"),
			},
		},
		{
			ID: "q-quick-04", Text: "What role does helping others play in your week?", Position: 4, Category: domain.CategoryMission,
			Options: []domain.AnswerOption{
				opt("Helping someone directly is the best part of my week", domain.CategoryMission, ""),
				neutral("I prefer work with no people component"),
			},
		},
		{
			ID: "q-quick-05", Text: "Are you known for a particular skill?", Position: 5, Category: domain.CategoryVocation,
			Options: []domain.AnswerOption{
				opt("People regularly come to me for help in my strongest skill", domain.CategoryVocation, ""),
				neutral("I would not say I am known for a particular skill"),
			},
		},
		{
			ID: "q-quick-06", Text: "How do you treat practice?", Position: 6, Category: domain.CategoryVocation,
			Options: []domain.AnswerOption{
				opt("I practice my craft even when nobody is asking me to", domain.CategoryVocation, ""),
				neutral("I only practice when work demands it"),
			},
		},
		{
			ID: "q-quick-07", Text: "How closely do you follow the job market?", Position: 7, Category: domain.CategoryProfession,
			Options: []domain.AnswerOption{
				opt("I actively track which skills are gaining market value", domain.CategoryProfession, ""),
				neutral("I do not think much about the market"),
			},
		},
		{
			ID: "q-quick-08", Text: "How do you feel about negotiating?", Position: 8, Category: domain.CategoryProfession,
			Options: []domain.AnswerOption{
				opt("Negotiating pay or terms energizes me", domain.CategoryProfession, ""),
				neutral("I avoid those conversations when I can"),
			},
		},
	}
}

func defaultFullBank() []domain.Question {
	return []domain.Question{
		{
			ID: "q-full-01", Text: "What place does artistic expression have in your life?", Position: 1, Category: domain.CategoryPassion, Subcategory: domain.SubCreativeArts,
			Options: []domain.AnswerOption{
				opt("I express myself best through an artistic medium", domain.CategoryPassion, domain.SubCreativeArts),
				neutral("Artistic expression is not really my channel"),
			},
		},
		{
			ID: "q-full-02", Text: "How do you react to the unfamiliar?", Position: 2, Category: domain.CategoryPassion, Subcategory: domain.SubExploration,
			Options: []domain.AnswerOption{
				opt("Unfamiliar places and ideas give me energy", domain.CategoryPassion, domain.SubExploration),
				neutral("I prefer the familiar"),
			},
		},
		{
			ID: "q-full-03", Text: "How important is sharing your point of view?", Position: 3, Category: domain.CategoryPassion, Subcategory: domain.SubSelfExpression,
			Options: []domain.AnswerOption{
				opt("Sharing my point of view feels essential, not optional", domain.CategoryPassion, domain.SubSelfExpression),
				neutral("I keep my opinions mostly to myself"),
			},
		},
		{
			ID: "q-full-04", Text: "Is there a cause you keep returning to?", Position: 4, Category: domain.CategoryMission, Subcategory: domain.SubSocialCauses,
			Options: []domain.AnswerOption{
				opt("There is a cause I would work on even unpaid", domain.CategoryMission, domain.SubSocialCauses),
				neutral("No single cause stands out for me"),
			},
		},
		{
			ID: "q-full-05", Text: "What is your role in the groups you belong to?", Position: 5, Category: domain.CategoryMission, Subcategory: domain.SubCommunity,
			Options: []domain.AnswerOption{
				opt("I naturally take care of the groups I belong to", domain.CategoryMission, domain.SubCommunity),
				neutral("I participate but rarely organize"),
			},
		},
		{
			ID: "q-full-06", Text: "How does mentoring feel to you?", Position: 6, Category: domain.CategoryMission, Subcategory: domain.SubMentorship,
			Options: []domain.AnswerOption{
				opt("Watching someone grow because of my help is deeply satisfying", domain.CategoryMission, domain.SubMentorship),
				neutral("Mentoring feels like a chore to me"),
			},
		},
		{
			ID: "q-full-07", Text: "Where do you stand when a group needs direction?", Position: 7, Category: domain.CategoryVocation, Subcategory: domain.SubLeadership,
			Options: []domain.AnswerOption{
				opt("Groups tend to look to me for direction", domain.CategoryVocation, domain.SubLeadership),
				neutral("I prefer to follow a clear lead"),
			},
		},
		{
			ID: "q-full-08", Text: "What draws you more, open problems or known plans?", Position: 8, Category: domain.CategoryVocation, Subcategory: domain.SubProblemSolving,
			Options: []domain.AnswerOption{
				opt("A hard unsolved problem is irresistible to me", domain.CategoryVocation, domain.SubProblemSolving),
				neutral("I would rather execute a known plan"),
			},
		},
		{
			ID: "q-full-09", Text: "When is a piece of work finished for you?", Position: 9, Category: domain.CategoryVocation, Subcategory: domain.SubCraftsmanship,
			Options: []domain.AnswerOption{
				opt("I redo work that is merely acceptable until it is excellent", domain.CategoryVocation, domain.SubCraftsmanship),
				neutral("Good enough is good enough"),
			},
		},
		{
			ID: "q-full-10", Text: "How far ahead do you plan your career?", Position: 10, Category: domain.CategoryProfession, Subcategory: domain.SubStrategy,
			Options: []domain.AnswerOption{
				opt("I plan my career several moves ahead", domain.CategoryProfession, domain.SubStrategy),
				neutral("I take opportunities as they come"),
			},
		},
		{
			ID: "q-full-11", Text: "Do you notice commercial opportunities around you?", Position: 11, Category: domain.CategoryProfession, Subcategory: domain.SubEnterprise,
			Options: []domain.AnswerOption{
				opt("I keep spotting things people would pay for", domain.CategoryProfession, domain.SubEnterprise),
				neutral("Commercial angles rarely occur to me"),
			},
		},
		{
			// Pregunta de cierre: una opcion aporta a dos dimensiones a la
			// vez, el modelo disperso lo permite.
			ID: "q-full-12", Text: "What does your ideal working life look like?", Position: 12, Category: domain.CategoryProfession, Subcategory: domain.SubStrategy,
			Options: []domain.AnswerOption{
				{
					Text: "My ideal work mixes creative freedom with solid income",
					Contribution: domain.ScoreContribution{
						Categories: map[domain.Category]int{
							domain.CategoryPassion:    1,
							domain.CategoryProfession: 1,
						},
						Subcategories: map[domain.Subcategory]int{
							domain.SubStrategy: 1,
						},
					},
				},
				opt("Stability matters more to me than freedom", domain.CategoryProfession, domain.SubStrategy),
				neutral("I have not thought about the trade-off"),
			},
		},
	}
}
