package chi

import domvac "github.com/kailas-cloud/hhdex/internal/domain/vacancy"

type vacancyListResponse struct {
	Items []map[string]any `json:"items"`
	Count int              `json:"count"`
}

type fileResponse struct {
	Name      string `json:"name"`
	Format    string `json:"format,omitempty"`
	Vacancies int    `json:"vacancies"`
	Usable    bool   `json:"usable"`
	Reason    string `json:"reason,omitempty"`
}

type inventoryResponse struct {
	Files  []fileResponse `json:"files"`
	Usable []string       `json:"usable"`
}

type collectResponse struct {
	File    string `json:"file"`
	Fetched int    `json:"fetched"`
	Added   int    `json:"added"`
	Total   int    `json:"total"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version"`
}

// vacancyList renders vacancies as their flat records plus the human-readable card.
func vacancyList(vs []domvac.Vacancy) vacancyListResponse {
	items := make([]map[string]any, len(vs))
	for i, v := range vs {
		m := v.ToMap()
		m["display"] = v.String()
		items[i] = m
	}
	return vacancyListResponse{Items: items, Count: len(vs)}
}
