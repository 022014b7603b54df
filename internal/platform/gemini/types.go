package gemini

// responseSchema is the JSON shape the prompt instructs the model to
// return. It mirrors domain.ArticleExtract but is kept separate so the
// wire contract with the model can drift without touching the domain.
type responseSchema struct {
	Title   string       `json:"title"`
	Summary string       `json:"summary"`
	Author  string       `json:"author"`
	Words   []wordSchema `json:"words"`
}

// wordSchema is a single candidate word in the model's reply.
type wordSchema struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
	Context       string `json:"context"`
	Tier          string `json:"tier"`
}

// promptData carries the values injected into the prompt template.
type promptData struct {
	ArticleText string
	MaxWords    int
}
