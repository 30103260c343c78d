package openai

import "fmt"

// Few-shot prompt for query freshness classification. The examples follow the
// phrasing distinction that matters for caching: questions about current
// state are volatile, questions about settled facts are stable.
const classifierPromptTemplate = `Classify the following query as either 'volatile' or 'stable'.

A query is 'volatile' when its answer changes frequently (current prices,
latest results, today's status). A query is 'stable' when its answer is a
settled fact that rarely changes.

Examples:
Q: What is the current stock price of Apple?
A: volatile

Q: What was Google's net income in 2018?
A: stable

Q: Show me the latest quarterly earnings for Tesla.
A: volatile

Q: What was Microsoft's revenue in Q1 2021?
A: stable

Answer with exactly one word: 'volatile' or 'stable'.

Q: %s
A:`

// Prompt for pairwise relevance scoring. The model sees query and passage
// jointly and returns a single integer, which keeps parsing trivial.
const scorerPromptTemplate = `Rate how relevant the passage is to the query on a scale from 0 to 10,
where 0 means completely irrelevant and 10 means the passage directly and
completely answers the query.

Answer with a single integer from 0 to 10 and nothing else.

Query: %s

Passage: %s

Rating:`

func buildClassifierPrompt(query string) string {
	return fmt.Sprintf(classifierPromptTemplate, query)
}

func buildScorerPrompt(query, passage string) string {
	return fmt.Sprintf(scorerPromptTemplate, query, passage)
}
