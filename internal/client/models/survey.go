package models

// Profile is the user record stored at users/{uid}.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Question is a survey question stored under the questions collection.
// The remote store assigns the key; records are immutable once posted.
type Question struct {
	Name   string `json:"name"`
	Body   string `json:"body"`
	Sender string `json:"sender"`
}

// QuestionItem pairs a question with its store-generated key.
type QuestionItem struct {
	ID string
	Question
}

// Answer is a reply stored under answers/{questionID}.
type Answer struct {
	Target string `json:"target"`
	Body   string `json:"body"`
	Sender string `json:"sender"`
}

// AnswerItem pairs an answer with its store-generated key.
type AnswerItem struct {
	ID string
	Answer
}
