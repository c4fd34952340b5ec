package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"examhub/backend/models"
)

var questionCSVHeaders = []string{"type", "question", "correct_answer", "points"}

// ParseQuestionsFromCSV reads exam questions from a CSV upload. Required
// columns are type, question, correct_answer and points; multiple choice
// rows also carry option1 through option4 and need at least two of them.
// Correct answers given as A through D are kept as the option letter.
func ParseQuestionsFromCSV(r io.Reader) ([]models.Question, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	index, err := validateCSVHeader(header)
	if err != nil {
		return nil, err
	}

	var questions []models.Question
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		question, err := parseQuestionRow(row, index)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	return questions, nil
}

func validateCSVHeader(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range questionCSVHeaders {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}
	return index, nil
}

func parseQuestionRow(row []string, index map[string]int) (*models.Question, error) {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	text := field("question")
	if text == "" {
		return nil, fmt.Errorf("CSV row has an empty question")
	}

	questionType := models.QuestionTheory
	if strings.ToLower(field("type")) == models.QuestionMultipleChoice {
		questionType = models.QuestionMultipleChoice
	}

	points, err := strconv.Atoi(field("points"))
	if err != nil || points < 1 {
		points = 1
	}

	question := &models.Question{
		Text:        text,
		Type:        questionType,
		Point:       points,
		Explanation: field("explanation"),
	}

	correct := field("correct_answer")
	if questionType == models.QuestionMultipleChoice {
		options := []string{field("option1"), field("option2"), field("option3"), field("option4")}
		present := 0
		for _, opt := range options {
			if opt != "" {
				present++
			}
		}
		if present < 2 {
			return nil, fmt.Errorf("question %q must have at least 2 options", text)
		}
		question.OptionA = options[0]
		question.OptionB = options[1]
		question.OptionC = options[2]
		question.OptionD = options[3]
		question.CorrectAnswer = normalizeCorrectAnswer(correct)
	} else {
		question.CorrectAnswer = correct
	}

	return question, nil
}

// normalizeCorrectAnswer accepts either an option letter or a zero-based
// option index and returns the letter form.
func normalizeCorrectAnswer(value string) string {
	upper := strings.ToUpper(strings.TrimSpace(value))
	switch upper {
	case "A", "B", "C", "D":
		return upper
	}
	if n, err := strconv.Atoi(upper); err == nil && n >= 0 && n <= 3 {
		return string(rune('A' + n))
	}
	return "A"
}
