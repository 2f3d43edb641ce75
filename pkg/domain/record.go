package domain

// QuestionRecord is everything scraped for one quiz question.
// Optional values are pointers so that "not found" survives the round trip
// through the intermediate file as null.
type QuestionRecord struct {
	QuestionNumber       int      `json:"question_number"`
	QuestionText         string   `json:"question_text"`
	ImageLocalPath       *string  `json:"image_local_path"`
	AllAnswerOptionsText []string `json:"all_answer_options_text"`
	CorrectAnswerText    *string  `json:"correct_answer_text"`
	IncorrectAnswerTexts []string `json:"incorrect_answer_texts"`
	Explanation          *string  `json:"explanation"`
}

// NewQuestionRecord returns a record with only the number set and every list initialised.
func NewQuestionRecord(number int) QuestionRecord {
	return QuestionRecord{
		QuestionNumber:       number,
		AllAnswerOptionsText: []string{},
		IncorrectAnswerTexts: []string{},
	}
}

// StringPtr is a helper for the optional fields.
func StringPtr(s string) *string {
	return &s
}

// Value dereferences an optional field, returning "" when it is absent.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
