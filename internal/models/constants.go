package models

const (
	ThinkTag       = `(?s)<think>.*?</think>`
	QuestionMarker = "Q: "
	AnswerMarker   = "\nA: "
	CorrectMarker  = "(<--)"
)

// canned retrieval queries
const (
	FlashcardQuery = "generate comprehensive flashcards"
	QuizQuery      = "generate comprehensive quiz questions"
	SummaryQuery   = "generate comprehensive document summary"
)

// Prompt templates use langchaingo's go-template format.
var (
	FlashcardPromptTemplate = `Based on the following study content, generate {{.num_cards}} flashcards for studying.
Each flashcard should have a clear question or term on the front and a concise answer or definition on the back.

STUDY CONTENT:
{{.content}}

ANSWER FORMAT:
Return only a JSON array of exactly {{.num_cards}} objects, with no other text.
Each object must have the string fields "front" and "back".

EXAMPLE OUTPUT:
[
  {"front": "What is photosynthesis?", "back": "The process by which green plants convert light energy into chemical energy."},
  {"front": "Define the term \"mitosis\"", "back": "Cell division producing two identical daughter cells."}
]
`

	QuizPromptTemplate = `Based on the following study text, create {{.num_questions}} multiple choice questions to test the knowledge of a student.

STUDY CONTENT:
{{.content}}

ANSWER FORMAT:
Return only a JSON array of exactly {{.num_questions}} objects, with no other text.
Each object must have:
  "question": the question text,
  "options": an object with exactly the keys "A", "B", "C" and "D",
  "correct_option": the key of the correct option.

EXAMPLE OUTPUT:
[
  {"question": "Which organelle produces ATP?", "options": {"A": "Nucleus", "B": "Mitochondrion", "C": "Ribosome", "D": "Golgi body"}, "correct_option": "B"}
]
`

	SummaryPromptTemplate = `You are an expert academic summarizer. Given text (context) from a document,
create a comprehensive, well-structured summary that captures all of the key points,
main concepts and important details, so a student can learn what the document covers
without reading the whole document.

Cover all topics, concepts and details of the document.
Make the summary educational and useful for a student reviewing this material.
Include section headings where appropriate (with #, ## etc).
Organize the content in a logical flow.
Do not include any extra text (e.g. "Here's your summary...") other than the summary itself.

CONTEXT:
{{.content}}
`

	AskPromptTemplate = `You are a helpful study assistant. Use only the provided context to answer the question.
If the context does not contain the answer, say that the document does not cover it.

CONTEXT:
{{.content}}

QUESTION: {{.question}}
`
)
