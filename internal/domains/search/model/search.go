package model

// Hit is one matching row of any catalogue table
type Hit struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Results groups hits by type: book, author, genre, language
type Results map[string][]Hit

func Group(hits []Hit) Results {
	out := make(Results)
	for _, h := range hits {
		out[h.Type] = append(out[h.Type], h)
	}
	return out
}
