package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ikigai-engine/internal/catalog"
	"ikigai-engine/internal/domain"
	"ikigai-engine/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// Herramienta offline para revisar la salida del motor sin levantar el API:
// toma un catalogo y un archivo de respuestas, y muestra vector, tipos y
// puntajes normalizados.
func main() {
	catalogPath := flag.String("catalog", "", "ruta a un catalogo YAML (vacio = catalogo por defecto)")
	answersPath := flag.String("answers", "", "archivo JSON con las respuestas")
	kindFlag := flag.String("kind", string(domain.KindQuick), "tipo de assessment: quick o full")
	flag.Parse()

	cat, err := catalog.Load(*catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	kind := domain.AssessmentKind(*kindFlag)
	bank, ok := cat.Bank(kind)
	if !ok {
		log.Fatalf("unknown assessment kind %q", kind)
	}
	table, ok := cat.Table(kind)
	if !ok {
		log.Fatalf("no archetype table for kind %q", kind)
	}

	answers, err := readAnswers(*answersPath)
	if err != nil {
		log.Fatalf("read answers: %v", err)
	}

	vector, err := service.DefaultScoreAggregator.Aggregate(bank, answers)
	if err != nil {
		log.Fatalf("aggregate: %v", err)
	}
	result, err := service.DefaultClassifier.Classify(vector, table, cat.CategoryMaxima(kind))
	if err != nil {
		log.Fatalf("classify: %v", err)
	}

	fmt.Printf("%s[Vector]%s\n", colorCyan, colorReset)
	for _, category := range domain.Categories {
		fmt.Printf("  %-12s %d\n", category, vector.Get(category))
	}
	for _, sub := range domain.Subcategories {
		if v := vector.Subcategories[sub]; v != 0 {
			fmt.Printf("  %-12s %d\n", sub, v)
		}
	}

	fmt.Printf("%s[Resultado]%s\n", colorGreen, colorReset)
	fmt.Printf("  primario:    %s (%s)\n", result.PrimaryType, result.PrimaryName)
	fmt.Printf("  secundario:  %s (%s)\n", result.SecondaryType, result.SecondaryName)
	fmt.Printf("  overall:     %d\n", result.OverallScore)
	for _, category := range domain.Categories {
		fmt.Printf("  norm %-8s %d\n", category, result.NormalizedScores[category])
	}
}

func readAnswers(path string) ([]domain.Answer, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -answers flag")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []struct {
		QuestionID  string `json:"question_id"`
		OptionIndex int    `json:"option_index"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	answers := make([]domain.Answer, 0, len(raw))
	for _, r := range raw {
		answers = append(answers, domain.Answer{
			QuestionID:  r.QuestionID,
			OptionIndex: r.OptionIndex,
			AnsweredAt:  time.Now().UTC(),
		})
	}
	return answers, nil
}
