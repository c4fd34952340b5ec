package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"examhub/backend/models"
)

func TestParseQuestionsFromCSV(t *testing.T) {
	input := strings.Join([]string{
		"type,question,correct_answer,points,option1,option2,option3,option4,explanation",
		"multiple_choice,What is 2+2?,B,5,3,4,5,6,Basic arithmetic",
		"multiple_choice,Pick the first option,0,2,alpha,beta,,,",
		"theory,Explain gravity,Mass attracts mass,10,,,,,",
	}, "\n")

	questions, err := ParseQuestionsFromCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, models.QuestionMultipleChoice, questions[0].Type)
	assert.Equal(t, "What is 2+2?", questions[0].Text)
	assert.Equal(t, "B", questions[0].CorrectAnswer)
	assert.Equal(t, 5, questions[0].Point)
	assert.Equal(t, "4", questions[0].OptionB)
	assert.Equal(t, "Basic arithmetic", questions[0].Explanation)

	// numeric answers are converted to the option letter
	assert.Equal(t, "A", questions[1].CorrectAnswer)

	assert.Equal(t, models.QuestionTheory, questions[2].Type)
	assert.Equal(t, "Mass attracts mass", questions[2].CorrectAnswer)
	assert.Equal(t, 10, questions[2].Point)
}

func TestParseQuestionsFromCSVMissingColumn(t *testing.T) {
	input := "type,question,points\nmultiple_choice,No answer column,1"

	_, err := ParseQuestionsFromCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "correct_answer")
}

func TestParseQuestionsFromCSVTooFewOptions(t *testing.T) {
	input := strings.Join([]string{
		"type,question,correct_answer,points,option1,option2",
		"multiple_choice,Lonely option,A,1,only one,",
	}, "\n")

	_, err := ParseQuestionsFromCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 options")
}

func TestParseQuestionsFromCSVDefaultsPoints(t *testing.T) {
	input := strings.Join([]string{
		"type,question,correct_answer,points",
		"theory,No point value,answer,",
	}, "\n")

	questions, err := ParseQuestionsFromCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 1, questions[0].Point)
}
