package jobs

import (
	"encoding/json"
	"os"
)

type Postings struct {
	Items []*Posting
}

// Posting is one job listing as returned by the job-board API. Once created
// it is immutable except for the analysis attached later in the run.
type Posting struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	PostedDate  string `json:"posted_date,omitempty"`
	ApplyURL    string `json:"apply_url,omitempty"`
}

func (p *Postings) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Items)
}

func (p *Postings) IDs() []string {
	ids := make([]string, 0, len(p.Items))
	for _, posting := range p.Items {
		ids = append(ids, posting.ID)
	}
	return ids
}

func (p *Postings) FindByID(id string) *Posting {
	for _, posting := range p.Items {
		if posting.ID == id {
			return posting
		}
	}

	return nil
}

// Headline is the combined title/company/location line shown to callers.
func (p *Posting) Headline() string {
	line := p.Title
	if p.Company != "" {
		line += " @ " + p.Company
	}
	if p.Location != "" {
		line += " (" + p.Location + ")"
	}
	return line
}

func (p *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", err
	}
	return file.Name(), nil
}
