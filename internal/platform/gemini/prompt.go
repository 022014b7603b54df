package gemini

import "text/template"

// extractionPromptText instructs the model to mine advanced vocabulary
// from an article and reply with bare JSON matching responseSchema.
const extractionPromptText = `You are a vocabulary tutor for advanced English learners.

Read the article below and identify up to {{.MaxWords}} words or short
phrases at CEFR level C1 or C2 that a proficient non-native reader is
likely not to know. Prefer words central to understanding the article.

For the article, provide its title, a one-sentence summary, and the
author if stated. For each word, provide:
- "word": the word or phrase exactly as it appears, lowercased
- "pronunciation": IPA pronunciation
- "meaning": a concise learner-friendly definition
- "context": the sentence from the article containing the word
- "tier": "C1" or "C2"

Respond with a single JSON object and nothing else:
{"title": "...", "summary": "...", "author": "...", "words": [{"word": "...", "pronunciation": "...", "meaning": "...", "context": "...", "tier": "..."}]}

Article:
{{.ArticleText}}`

// extractionPrompt is the parsed template shared by all extractor
// instances.
var extractionPrompt = template.Must(template.New("extraction").Parse(extractionPromptText))
